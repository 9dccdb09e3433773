package control

import (
	"errors"
	"math"

	"github.com/ipmifan/ipmifan/internal/configuration"
	"github.com/ipmifan/ipmifan/internal/util"
)

// ErrNoReadings indicates that every sensor of a zone failed in the same
// cycle. This is escalated instead of silently defaulted, flying blind on
// thermal control is unsafe.
var ErrNoReadings = errors.New("no sensor readings")

// Aggregate reduces the given temperature readings to a single value using
// the zone's aggregate function.
func Aggregate(readings []float64, function configuration.AggregateFunction) (float64, error) {
	if len(readings) == 0 {
		return 0, ErrNoReadings
	}

	switch function {
	case configuration.AggregateMinimum:
		min := readings[0]
		for _, value := range readings {
			min = math.Min(min, value)
		}
		return min, nil
	case configuration.AggregateMaximum:
		max := readings[0]
		for _, value := range readings {
			max = math.Max(max, value)
		}
		return max, nil
	case configuration.AggregateAverage:
		return util.Avg(readings), nil
	}

	// validation guarantees one of the cases above
	return 0, ErrNoReadings
}
