package control

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ipmifan/ipmifan/internal/configuration"
)

func TestAggregateMinimum(t *testing.T) {
	// GIVEN
	readings := []float64{30, 45, 38}

	// WHEN
	result, err := Aggregate(readings, configuration.AggregateMinimum)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 30.0, result)
}

func TestAggregateMaximum(t *testing.T) {
	// GIVEN
	readings := []float64{30, 45, 38}

	// WHEN
	result, err := Aggregate(readings, configuration.AggregateMaximum)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 45.0, result)
}

func TestAggregateAverage(t *testing.T) {
	// GIVEN
	readings := []float64{30, 45, 38}

	// WHEN
	result, err := Aggregate(readings, configuration.AggregateAverage)

	// THEN
	assert.NoError(t, err)
	assert.InDelta(t, 37.666, result, 0.001)
}

func TestAggregateSingleReading(t *testing.T) {
	// GIVEN
	readings := []float64{42.5}

	// WHEN
	result, err := Aggregate(readings, configuration.AggregateAverage)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 42.5, result)
}

func TestAggregateEmpty(t *testing.T) {
	// GIVEN
	var readings []float64

	// WHEN
	_, err := Aggregate(readings, configuration.AggregateAverage)

	// THEN
	assert.ErrorIs(t, err, ErrNoReadings)
}
