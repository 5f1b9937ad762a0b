package circuit

import (
	"errors"
	"fmt"

	"github.com/cwbudde/wavechild670/dsp/core"
)

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("circuit: sample rate must be positive and finite")
	// ErrInvalidComponent is returned for non-physical component values.
	ErrInvalidComponent = errors.New("circuit: invalid component value")
	// ErrInvalidPreset is returned for time-constant presets outside 1..6.
	ErrInvalidPreset = errors.New("circuit: time-constant preset must be in [1, 6]")
)

// TransformerComponents describes a non-ideal audio transformer: primary
// winding resistance and leakage inductance, magnetising inductance with a
// parallel core-loss resistance, an ideal turns ratio, and the secondary
// winding resistance, leakage inductance and winding capacitance.
type TransformerComponents struct {
	PrimaryResistance   float64 // ohms
	PrimaryLeakage      float64 // henries
	Magnetizing         float64 // henries
	CoreLoss            float64 // ohms
	TurnsRatio          float64 // Np/Ns, negative for antiphase windings
	SecondaryResistance float64 // ohms
	SecondaryLeakage    float64 // henries
	WindingCapacitance  float64 // farads
}

// InputComponents describes the program input network up to the grids.
type InputComponents struct {
	SourceResistance      float64
	TerminationResistance float64
	GateResistance        float64
	Transformer           TransformerComponents
}

// StageComponents describes one push or pull triode stage.
type StageComponents struct {
	// Sections is the number of identical triode sections wired in parallel.
	Sections int

	PlateSupply     float64 // volts
	PlateResistance float64 // ohms, supply decoupling

	Transformer TransformerComponents

	LoadResistance      float64 // output load on the secondary
	SidechainResistance float64 // sidechain input loading the secondary

	CathodeBias           float64 // volts
	CathodeResistance     float64
	CathodeCapacitance    float64
	CathodeLinkResistance float64 // resistance of the shared cathode node link
}

// AmplifierComponents collects every component value of a
// VariableMuAmplifier.
type AmplifierComponents struct {
	Input InputComponents
	Stage StageComponents

	// GateBias is the fixed grid bias voltage applied to both stages.
	GateBias float64
}

// DefaultAmplifierComponents returns plausible values for a 670-style
// variable-mu amplifier. Small-signal gain is about +4.7 dB with no control
// voltage applied, about -3 dB at 10 V and below -20 dB at 20 V.
func DefaultAmplifierComponents() AmplifierComponents {
	return AmplifierComponents{
		Input: InputComponents{
			SourceResistance:      600,
			TerminationResistance: 600,
			GateResistance:        1e6,
			Transformer: TransformerComponents{
				PrimaryResistance:   10,
				PrimaryLeakage:      2e-3,
				Magnetizing:         20,
				CoreLoss:            100e3,
				TurnsRatio:          1,
				SecondaryResistance: 50,
				SecondaryLeakage:    5e-3,
				WindingCapacitance:  100e-12,
			},
		},
		Stage: StageComponents{
			Sections:        2,
			PlateSupply:     240,
			PlateResistance: 1000,
			Transformer: TransformerComponents{
				PrimaryResistance:   50,
				PrimaryLeakage:      5e-3,
				Magnetizing:         50,
				CoreLoss:            200e3,
				TurnsRatio:          -2,
				SecondaryResistance: 10,
				SecondaryLeakage:    1e-3,
				WindingCapacitance:  1e-9,
			},
			LoadResistance:        600,
			SidechainResistance:   1e6,
			CathodeBias:           1,
			CathodeResistance:     200,
			CathodeCapacitance:    32e-6,
			CathodeLinkResistance: 1e-6,
		},
		GateBias: -2,
	}
}

// Validate reports the first non-physical value.
func (c AmplifierComponents) Validate() error {
	err := c.Input.validate()
	if err != nil {
		return err
	}

	err = c.Stage.validate()
	if err != nil {
		return err
	}

	if !core.IsFinite(c.GateBias) {
		return fmt.Errorf("%w: gate bias must be finite: %g", ErrInvalidComponent, c.GateBias)
	}

	return nil
}

func (c InputComponents) validate() error {
	err := requirePositive(
		named{"input source resistance", c.SourceResistance},
		named{"input termination resistance", c.TerminationResistance},
		named{"gate resistance", c.GateResistance},
	)
	if err != nil {
		return err
	}

	return c.Transformer.validate("input")
}

func (c StageComponents) validate() error {
	if c.Sections < 1 {
		return fmt.Errorf("%w: tube sections must be at least 1: %d", ErrInvalidComponent, c.Sections)
	}

	if !core.IsFinite(c.PlateSupply) || !core.IsFinite(c.CathodeBias) {
		return fmt.Errorf("%w: supply voltages must be finite: plate=%g cathode=%g",
			ErrInvalidComponent, c.PlateSupply, c.CathodeBias)
	}

	err := requirePositive(
		named{"plate resistance", c.PlateResistance},
		named{"load resistance", c.LoadResistance},
		named{"sidechain resistance", c.SidechainResistance},
		named{"cathode resistance", c.CathodeResistance},
		named{"cathode capacitance", c.CathodeCapacitance},
		named{"cathode link resistance", c.CathodeLinkResistance},
	)
	if err != nil {
		return err
	}

	return c.Transformer.validate("output")
}

func (c TransformerComponents) validate(which string) error {
	if c.TurnsRatio == 0 || !core.IsFinite(c.TurnsRatio) {
		return fmt.Errorf("%w: %s transformer turns ratio must be non-zero and finite: %g",
			ErrInvalidComponent, which, c.TurnsRatio)
	}

	return requirePositive(
		named{which + " primary resistance", c.PrimaryResistance},
		named{which + " primary leakage", c.PrimaryLeakage},
		named{which + " magnetizing inductance", c.Magnetizing},
		named{which + " core loss", c.CoreLoss},
		named{which + " secondary resistance", c.SecondaryResistance},
		named{which + " secondary leakage", c.SecondaryLeakage},
		named{which + " winding capacitance", c.WindingCapacitance},
	)
}

type named struct {
	name  string
	value float64
}

func requirePositive(values ...named) error {
	for _, v := range values {
		if v.value <= 0 || !core.IsFinite(v.value) {
			return fmt.Errorf("%w: %s must be positive and finite: %g", ErrInvalidComponent, v.name, v.value)
		}
	}

	return nil
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	return nil
}
