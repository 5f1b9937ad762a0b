package dynamics

import (
	"errors"
	"fmt"

	"github.com/cwbudde/wavechild670/dsp/circuit"
)

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("dynamics: sample rate must be positive and finite")
	// ErrInvalidParameter is returned for out-of-range parameter values.
	ErrInvalidParameter = errors.New("dynamics: invalid parameter")
	// ErrTimeConstantSelect is returned for time-constant selectors outside [1, 6].
	ErrTimeConstantSelect = errors.New("dynamics: time constant select must be in [1, 6]")
	// ErrInvalidDuration is returned for negative or non-finite warm-up times.
	ErrInvalidDuration = errors.New("dynamics: duration must be non-negative and finite")
	// ErrBufferLength is returned for mismatched or odd interleaved buffers.
	ErrBufferLength = errors.New("dynamics: invalid buffer length")
	// ErrNonFiniteInput is returned when an input sample is NaN or infinite.
	ErrNonFiniteInput = errors.New("dynamics: non-finite input sample")
)

// MidSideEncoding selects the mid/side matrix used when Parameters.MidSide
// is enabled.
type MidSideEncoding int

const (
	// MidSideStandard encodes A=(L+R)/sqrt2, B=(L-R)/sqrt2.
	MidSideStandard MidSideEncoding = iota
	// MidSideLegacy encodes A=(L+L)/sqrt2, B=(R-R)/sqrt2, reproducing the
	// reference plugin verbatim. Channel B then carries no signal.
	MidSideLegacy
)

// String returns the encoding name.
func (m MidSideEncoding) String() string {
	switch m {
	case MidSideStandard:
		return "standard"
	case MidSideLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("MidSideEncoding(%d)", int(m))
	}
}

// Parameters is the front-panel state of a Wavechild670. Fields suffixed A
// and B address the two channels (left/right, or mid/side).
type Parameters struct {
	InputLevelA float64
	InputLevelB float64

	// ACThreshold scales the sidechain amplifier gain.
	ACThresholdA float64
	ACThresholdB float64

	// DCThreshold is the rectifier bias in volts.
	DCThresholdA float64
	DCThresholdB float64

	// TimeConstantSelect picks one of the six level-circuit presets.
	TimeConstantSelectA int
	TimeConstantSelectB int

	SidechainLink bool
	MidSide       bool
	Topology      DynamicsTopology

	OutputGain     float64
	HardClipOutput bool
}

// DefaultParameters returns unity input and output levels, moderate
// thresholds, the fastest time constant and feedback topology.
func DefaultParameters() Parameters {
	return Parameters{
		InputLevelA:         1,
		InputLevelB:         1,
		ACThresholdA:        0.5,
		ACThresholdB:        0.5,
		DCThresholdA:        2,
		DCThresholdB:        2,
		TimeConstantSelectA: 1,
		TimeConstantSelectB: 1,
		Topology:            DynamicsTopologyFeedback,
		OutputGain:          1,
	}
}

// Validate reports the first invalid field.
func (p Parameters) Validate() error {
	for _, sel := range []int{p.TimeConstantSelectA, p.TimeConstantSelectB} {
		if sel < 1 || sel > circuit.NumTimeConstantPresets {
			return fmt.Errorf("%w: %d", ErrTimeConstantSelect, sel)
		}
	}

	levels := []struct {
		name  string
		value float64
	}{
		{"input level A", p.InputLevelA},
		{"input level B", p.InputLevelB},
		{"AC threshold A", p.ACThresholdA},
		{"AC threshold B", p.ACThresholdB},
		{"DC threshold A", p.DCThresholdA},
		{"DC threshold B", p.DCThresholdB},
		{"output gain", p.OutputGain},
	}

	for _, l := range levels {
		if l.value < 0 || !isFinite(l.value) {
			return fmt.Errorf("%w: %s must be non-negative and finite: %f", ErrInvalidParameter, l.name, l.value)
		}
	}

	return validateTopology(p.Topology)
}
