package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHysteresisGateFirstCycleReacts(t *testing.T) {
	// GIVEN
	gate := NewHysteresisGate(3.0)

	// WHEN
	react := gate.ShouldReact(40)

	// THEN
	assert.True(t, react)
	_, primed := gate.Baseline()
	assert.False(t, primed)
}

func TestHysteresisGateSuppressesSmallChanges(t *testing.T) {
	// GIVEN
	gate := NewHysteresisGate(3.0)
	gate.Commit(40)

	// WHEN / THEN
	assert.False(t, gate.ShouldReact(41))
	assert.False(t, gate.ShouldReact(39))
	assert.False(t, gate.ShouldReact(42.9))
	assert.False(t, gate.ShouldReact(37.1))
}

func TestHysteresisGateReactsAtSensitivity(t *testing.T) {
	// GIVEN
	gate := NewHysteresisGate(3.0)
	gate.Commit(40)

	// WHEN / THEN
	assert.True(t, gate.ShouldReact(43))
	assert.True(t, gate.ShouldReact(37))
	assert.True(t, gate.ShouldReact(50))
}

func TestHysteresisGateBaselineTracksCommits(t *testing.T) {
	// GIVEN
	gate := NewHysteresisGate(2.0)
	gate.Commit(40)

	// WHEN
	// a slow drift of 1°C per cycle with a commit on each reaction
	assert.False(t, gate.ShouldReact(41))
	assert.True(t, gate.ShouldReact(42))
	gate.Commit(42)

	// THEN
	baseline, primed := gate.Baseline()
	assert.True(t, primed)
	assert.Equal(t, 42.0, baseline)
	assert.False(t, gate.ShouldReact(43))
}
