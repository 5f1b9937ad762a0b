package dynamics

import (
	"fmt"
	"math"
)

const (
	defaultSidechainCouplingHz = 20.0
	defaultSidechainGain       = 20.0
	defaultSidechainSaturation = 80.0
	defaultSidechainSourceOhms = 100.0
)

// SidechainComponents describes the sidechain amplifier and rectifier.
type SidechainComponents struct {
	CouplingCutoff   float64 // Hz, input coupling high-pass
	Gain             float64 // voltage gain at an AC threshold of 1
	Saturation       float64 // volts, soft output swing limit
	SourceResistance float64 // ohms, rectifier source into the level circuit
}

// DefaultSidechainComponents returns the default sidechain values.
func DefaultSidechainComponents() SidechainComponents {
	return SidechainComponents{
		CouplingCutoff:   defaultSidechainCouplingHz,
		Gain:             defaultSidechainGain,
		Saturation:       defaultSidechainSaturation,
		SourceResistance: defaultSidechainSourceOhms,
	}
}

func (c SidechainComponents) validate(sampleRate float64) error {
	if c.CouplingCutoff <= 0 || c.CouplingCutoff >= sampleRate*0.5 || !isFinite(c.CouplingCutoff) {
		return fmt.Errorf("%w: sidechain coupling cutoff must be in (0, nyquist): %f",
			ErrInvalidParameter, c.CouplingCutoff)
	}

	for _, v := range []float64{c.Gain, c.Saturation, c.SourceResistance} {
		if v <= 0 || !isFinite(v) {
			return fmt.Errorf("%w: sidechain gain, saturation and source resistance must be positive and finite: %f",
				ErrInvalidParameter, v)
		}
	}

	return nil
}

// SidechainAmplifier converts a program voltage into the charging current
// of the level circuit.
//
// The program is AC coupled, amplified by Gain*acThreshold with a soft
// tanh limit at Saturation volts, and full-wave rectified against the
// level capacitor voltage plus the DC threshold. Current flows only while
// the rectified swing exceeds that voltage, through SourceResistance.
type SidechainAmplifier struct {
	components  SidechainComponents
	coupling    onePoleHighPass
	acThreshold float64
	dcThreshold float64
}

// NewSidechainAmplifier creates a sidechain amplifier with AC threshold 1
// and DC threshold 0.
func NewSidechainAmplifier(sampleRate float64, c SidechainComponents) (*SidechainAmplifier, error) {
	err := validateSampleRate(sampleRate)
	if err != nil {
		return nil, err
	}

	err = c.validate(sampleRate)
	if err != nil {
		return nil, err
	}

	s := &SidechainAmplifier{
		components:  c,
		acThreshold: 1,
	}
	s.coupling.Configure(c.CouplingCutoff, sampleRate)

	return s, nil
}

// SetThresholds sets the AC threshold (sidechain gain scale) and the DC
// threshold (rectifier bias voltage).
func (s *SidechainAmplifier) SetThresholds(ac, dc float64) {
	s.acThreshold = ac
	s.dcThreshold = dc
}

// AdvanceAndGetCurrent processes one program sample and returns the current
// delivered to the level circuit, never negative.
func (s *SidechainAmplifier) AdvanceAndGetCurrent(programVoltage, levelCapVoltage float64) float64 {
	x := s.coupling.Process(programVoltage)

	vsat := s.components.Saturation
	v := vsat * math.Tanh(s.components.Gain*s.acThreshold*x/vsat)

	headroom := math.Abs(v) - levelCapVoltage - s.dcThreshold
	if headroom <= 0 {
		return 0
	}

	return headroom / s.components.SourceResistance
}

// Reset clears the coupling state.
func (s *SidechainAmplifier) Reset() {
	s.coupling.Reset()
}
