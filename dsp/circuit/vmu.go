package circuit

import (
	"github.com/cwbudde/wavechild670/dsp/tube"
	"github.com/cwbudde/wavechild670/dsp/wdf"
	"github.com/cwbudde/wavechild670/internal/assert"
)

// VariableMuAmplifier is a balanced push/pull variable-mu stage.
//
// The input circuit produces a balanced grid drive. Each stage sees the
// fixed gate bias minus the control voltage, plus (push) or minus (pull) the
// drive. Both cathodes meet at a shared capacitor node, coupled with a
// one-sample lag through a bidirectional unit delay. The output is the
// difference of the two stage outputs, so even-order products and the
// control-voltage thump cancel.
//
// Raising the control voltage drives both grids further negative, lowering
// transconductance and therefore gain.
type VariableMuAmplifier struct {
	input       *InputCircuit
	push        *TubeStage
	pull        *TubeStage
	cathodeLink *wdf.BidirectionalUnitDelay
	gateBias    float64
}

// NewVariableMuAmplifier builds an amplifier from components. model nil
// selects tube.DefaultRemoteCutoff; the model is shared by both stages.
func NewVariableMuAmplifier(sampleRate float64, c AmplifierComponents, model tube.Model) (*VariableMuAmplifier, error) {
	err := validateSampleRate(sampleRate)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	if model == nil {
		model = tube.DefaultRemoteCutoff()
	}

	input, err := NewInputCircuit(sampleRate, c.Input)
	if err != nil {
		return nil, err
	}

	link := wdf.NewBidirectionalUnitDelay(c.Stage.CathodeLinkResistance)

	push, err := NewTubeStage(sampleRate, c.Stage, model, link.Port(0))
	if err != nil {
		return nil, err
	}

	pull, err := NewTubeStage(sampleRate, c.Stage, model, link.Port(1))
	if err != nil {
		return nil, err
	}

	return &VariableMuAmplifier{
		input:       input,
		push:        push,
		pull:        pull,
		cathodeLink: link,
		gateBias:    c.GateBias,
	}, nil
}

// AdvanceAndGetOutputVoltage advances the amplifier by one sample and
// returns the differential output voltage. levelCapVoltage is the control
// voltage subtracted from both grid biases.
func (a *VariableMuAmplifier) AdvanceAndGetOutputVoltage(inputVoltage, levelCapVoltage float64) float64 {
	assert.Finite("amplifier input voltage", inputVoltage)
	assert.Finite("level cap voltage", levelCapVoltage)

	vg := a.input.Advance(inputVoltage)
	bias := a.gateBias - levelCapVoltage

	outPush := a.push.Advance(bias + vg)
	outPull := a.pull.Advance(bias - vg)

	a.cathodeLink.Advance()

	out := outPush - outPull
	assert.Finite("amplifier output voltage", out)

	return out
}

// Push returns the push stage.
func (a *VariableMuAmplifier) Push() *TubeStage { return a.push }

// Pull returns the pull stage.
func (a *VariableMuAmplifier) Pull() *TubeStage { return a.pull }

// Reset clears all reactive state.
func (a *VariableMuAmplifier) Reset() {
	a.input.Reset()
	a.push.Reset()
	a.pull.Reset()
	a.cathodeLink.Reset()
}
