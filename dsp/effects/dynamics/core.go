package dynamics

import (
	"fmt"
	"math"
)

// DynamicsTopology selects where detector control is measured from.
//
//nolint:revive
type DynamicsTopology int

const (
	// DynamicsTopologyFeedforward detects from the input/sidechain path.
	DynamicsTopologyFeedforward DynamicsTopology = iota
	// DynamicsTopologyFeedback detects from the prior output gain path.
	DynamicsTopologyFeedback
)

// String returns the topology name.
func (t DynamicsTopology) String() string {
	switch t {
	case DynamicsTopologyFeedforward:
		return "feedforward"
	case DynamicsTopologyFeedback:
		return "feedback"
	default:
		return fmt.Sprintf("DynamicsTopology(%d)", int(t))
	}
}

func validateTopology(topology DynamicsTopology) error {
	if topology != DynamicsTopologyFeedforward && topology != DynamicsTopologyFeedback {
		return fmt.Errorf("%w: invalid dynamics topology: %d", ErrInvalidParameter, topology)
	}

	return nil
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !isFinite(sampleRate) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	return nil
}

func isFinite(v float64) bool {
	return !(math.IsNaN(v) || math.IsInf(v, 0))
}

// onePoleHighPass subtracts a one-pole low-pass of the input from the
// input. It models a series coupling capacitor into a resistive load.
type onePoleHighPass struct {
	alpha float64
	lp    float64
}

func (f *onePoleHighPass) Configure(cutoffHz, sampleRate float64) {
	f.alpha = 1.0 - math.Exp(-2.0*math.Pi*cutoffHz/sampleRate)
}

func (f *onePoleHighPass) Process(x float64) float64 {
	f.lp += f.alpha * (x - f.lp)
	return x - f.lp
}

func (f *onePoleHighPass) Reset() {
	f.lp = 0
}
