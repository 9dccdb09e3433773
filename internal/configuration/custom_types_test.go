package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAggregateFunctionNames(t *testing.T) {
	cases := map[string]AggregateFunction{
		"minimum": AggregateMinimum,
		"min":     AggregateMinimum,
		"average": AggregateAverage,
		"avg":     AggregateAverage,
		"maximum": AggregateMaximum,
		"max":     AggregateMaximum,
		"MAX":     AggregateMaximum,
		" avg ":   AggregateAverage,
	}

	for input, expected := range cases {
		result, err := ParseAggregateFunction(input)
		assert.NoError(t, err, "input %q", input)
		assert.Equal(t, expected, result, "input %q", input)
	}
}

func TestParseAggregateFunctionNumericEncodings(t *testing.T) {
	// legacy ini-style configs encode the function as 0, 1 or 2
	cases := map[interface{}]AggregateFunction{
		0:   AggregateMinimum,
		1:   AggregateAverage,
		2:   AggregateMaximum,
		"0": AggregateMinimum,
		"2": AggregateMaximum,
	}

	for input, expected := range cases {
		result, err := ParseAggregateFunction(input)
		assert.NoError(t, err)
		assert.Equal(t, expected, result)
	}
}

func TestParseAggregateFunctionInvalid(t *testing.T) {
	for _, input := range []interface{}{"median", "3", 7, true} {
		_, err := ParseAggregateFunction(input)
		assert.Error(t, err, "input %v", input)
	}
}
