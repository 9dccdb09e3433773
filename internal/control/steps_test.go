package control

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ipmifan/ipmifan/internal/configuration"
)

func cpuZoneConfig() configuration.ZoneConfig {
	return configuration.ZoneConfig{
		Steps:    6,
		MinTemp:  30,
		MaxTemp:  60,
		MinLevel: 35,
		MaxLevel: 100,
	}
}

func TestStepCurveBounds(t *testing.T) {
	// GIVEN
	curve := NewStepCurve(cpuZoneConfig())

	// WHEN
	belowMin := curve.Evaluate(10)
	atMin := curve.Evaluate(30)
	atMax := curve.Evaluate(60)
	aboveMax := curve.Evaluate(95)

	// THEN
	assert.Equal(t, 35, belowMin)
	assert.Equal(t, 35, atMin)
	assert.Equal(t, 100, atMax)
	assert.Equal(t, 100, aboveMax)
}

func TestStepCurveMidpoint(t *testing.T) {
	// GIVEN
	curve := NewStepCurve(cpuZoneConfig())

	// WHEN
	level := curve.Evaluate(45)

	// THEN
	// 45°C is exactly on the gain=3 boundary, which rounds towards the
	// higher bin
	assert.Equal(t, 68, level)
}

func TestStepCurveMonotonic(t *testing.T) {
	// GIVEN
	curve := NewStepCurve(cpuZoneConfig())

	// WHEN / THEN
	last := curve.Evaluate(25)
	for temp := 25.0; temp <= 65.0; temp += 0.5 {
		level := curve.Evaluate(temp)
		assert.GreaterOrEqual(t, level, last, "level decreased at %.1f°C", temp)
		last = level
	}
}

func TestStepCurveLevelRange(t *testing.T) {
	// GIVEN
	curve := NewStepCurve(cpuZoneConfig())

	// WHEN / THEN
	for temp := -20.0; temp <= 120.0; temp += 0.25 {
		level := curve.Evaluate(temp)
		assert.GreaterOrEqual(t, level, 35)
		assert.LessOrEqual(t, level, 100)
	}
}

func TestStepCurveTable(t *testing.T) {
	// GIVEN
	curve := NewStepCurve(configuration.ZoneConfig{
		Steps:    4,
		MinTemp:  32,
		MaxTemp:  46,
		MinLevel: 35,
		MaxLevel: 100,
	})

	// WHEN
	table := curve.Table()

	// THEN
	assert.Len(t, table, 5)
	assert.Equal(t, TablePoint{Gain: 0, Temperature: 32, Level: 35}, table[0])
	assert.Equal(t, 4, table[4].Gain)
	assert.Equal(t, 46.0, table[4].Temperature)
	assert.Equal(t, 100, table[4].Level)
}
