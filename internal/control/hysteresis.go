package control

import "math"

// HysteresisGate suppresses reactions to temperature changes smaller than
// the zone's sensitivity, preventing level chatter from sensor noise around
// a step boundary.
type HysteresisGate struct {
	sensitivity float64

	baseline float64
	primed   bool
}

func NewHysteresisGate(sensitivity float64) *HysteresisGate {
	return &HysteresisGate{
		sensitivity: sensitivity,
	}
}

// ShouldReact returns true if the given temperature deviates from the
// committed baseline by at least the sensitivity. The very first evaluation
// always reacts, there is no baseline yet.
func (g *HysteresisGate) ShouldReact(temperature float64) bool {
	if !g.primed {
		return true
	}
	return math.Abs(temperature-g.baseline) >= g.sensitivity
}

// Commit moves the baseline to the given temperature. Called after the
// controller acted on a reading, so the gate tracks drift instead of the
// last raw sample.
func (g *HysteresisGate) Commit(temperature float64) {
	g.baseline = temperature
	g.primed = true
}

// Baseline returns the committed baseline and whether one exists.
func (g *HysteresisGate) Baseline() (float64, bool) {
	return g.baseline, g.primed
}
