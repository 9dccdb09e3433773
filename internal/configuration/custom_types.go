package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// AggregateFunction selects how the unit temperatures of a zone are reduced
// to a single representative value.
type AggregateFunction string

const (
	AggregateMinimum AggregateFunction = "minimum"
	AggregateAverage AggregateFunction = "average"
	AggregateMaximum AggregateFunction = "maximum"
)

// ParseAggregateFunction converts a raw configuration value into an
// AggregateFunction. Besides the canonical names it accepts short spellings
// and the numeric encodings of older ini-style configs (0-min, 1-avg, 2-max).
func ParseAggregateFunction(value interface{}) (AggregateFunction, error) {
	switch v := value.(type) {
	case int:
		return aggregateFunctionFromInt(v)
	case int64:
		return aggregateFunctionFromInt(int(v))
	case float64:
		return aggregateFunctionFromInt(int(v))
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "min", "minimum":
			return AggregateMinimum, nil
		case "avg", "average":
			return AggregateAverage, nil
		case "max", "maximum":
			return AggregateMaximum, nil
		}
		if i, err := strconv.Atoi(v); err == nil {
			return aggregateFunctionFromInt(i)
		}
		return "", fmt.Errorf("unsupported aggregate function %q, use one of: minimum | average | maximum", v)
	}
	return "", fmt.Errorf("cannot parse %T as aggregate function", value)
}

func aggregateFunctionFromInt(value int) (AggregateFunction, error) {
	switch value {
	case 0:
		return AggregateMinimum, nil
	case 1:
		return AggregateAverage, nil
	case 2:
		return AggregateMaximum, nil
	}
	return "", fmt.Errorf("unsupported aggregate function value (%d)", value)
}

// aggregateFunctionHookFunc returns a mapstructure decode hook that converts
// raw string and numeric config values into an AggregateFunction.
func aggregateFunctionHookFunc() mapstructure.DecodeHookFuncType {
	aggregateType := reflect.TypeOf(AggregateFunction(""))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != aggregateType {
			return data, nil
		}
		return ParseAggregateFunction(data)
	}
}
