package control

import (
	"math"

	"github.com/ipmifan/ipmifan/internal/configuration"
)

// StepCurve maps an aggregated zone temperature to a discrete fan duty level
// using evenly spaced steps across [minTemp, maxTemp] and
// [minLevel, maxLevel]. The mapping is monotonic and stepwise constant.
type StepCurve struct {
	minTemp  float64
	maxTemp  float64
	steps    int
	minLevel int
	maxLevel int

	tempStep  float64
	levelStep float64
}

// TablePoint is one entry of the temperature to level mapping of a StepCurve.
type TablePoint struct {
	Gain        int
	Temperature float64
	Level       int
}

func NewStepCurve(zone configuration.ZoneConfig) *StepCurve {
	return &StepCurve{
		minTemp:   zone.MinTemp,
		maxTemp:   zone.MaxTemp,
		steps:     zone.Steps,
		minLevel:  zone.MinLevel,
		maxLevel:  zone.MaxLevel,
		tempStep:  (zone.MaxTemp - zone.MinTemp) / float64(zone.Steps),
		levelStep: float64(zone.MaxLevel-zone.MinLevel) / float64(zone.Steps),
	}
}

// Evaluate returns the duty level for the given temperature. Values at or
// below minTemp yield exactly minLevel, values at or above maxTemp yield
// exactly maxLevel. A temperature on a bin boundary belongs to the higher
// bin, so the curve never undershoots cooling needs.
func (c *StepCurve) Evaluate(temperature float64) int {
	if temperature <= c.minTemp {
		return c.minLevel
	}
	if temperature >= c.maxTemp {
		return c.maxLevel
	}

	gain := math.Round((temperature - c.minTemp) / c.tempStep)
	return int(math.Round(gain*c.levelStep)) + c.minLevel
}

// Table returns the full gain to (temperature, level) mapping of the curve,
// used for debug logging and the "zone curve" command.
func (c *StepCurve) Table() []TablePoint {
	points := make([]TablePoint, 0, c.steps+1)
	for gain := 0; gain <= c.steps; gain++ {
		points = append(points, TablePoint{
			Gain:        gain,
			Temperature: c.minTemp + float64(gain)*c.tempStep,
			Level:       int(math.Round(float64(gain)*c.levelStep)) + c.minLevel,
		})
	}
	return points
}
