package dynamics

import (
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/wavechild670/dsp/circuit"
	"github.com/cwbudde/wavechild670/dsp/tube"
	"github.com/cwbudde/wavechild670/internal/assert"
)

// DefaultWarmUpSeconds settles the circuit before audio is processed.
const DefaultWarmUpSeconds = 0.5

const invSqrt2 = 1 / math.Sqrt2

// Wavechild670Metrics holds metering information since the last reset.
type Wavechild670Metrics struct {
	InputPeak      float64 // Maximum absolute input sample
	OutputPeak     float64 // Maximum absolute output sample, after gain and clip
	MaxLevelCapA   float64 // Highest control voltage on channel A
	MaxLevelCapB   float64 // Highest control voltage on channel B
	ClippedSamples int     // Samples limited by the output hard clip
}

type wavechild670Config struct {
	logger     logrus.FieldLogger
	midSide    MidSideEncoding
	components circuit.AmplifierComponents
	model      tube.Model
	sidechain  SidechainComponents
}

// Wavechild670Option configures construction-time choices.
type Wavechild670Option func(*wavechild670Config) error

// WithLogger sets the logger. The default is the logrus standard logger.
func WithLogger(logger logrus.FieldLogger) Wavechild670Option {
	return func(cfg *wavechild670Config) error {
		if logger == nil {
			return fmt.Errorf("%w: logger must not be nil", ErrInvalidParameter)
		}

		cfg.logger = logger

		return nil
	}
}

// WithMidSideEncoding selects the mid/side matrix.
func WithMidSideEncoding(encoding MidSideEncoding) Wavechild670Option {
	return func(cfg *wavechild670Config) error {
		if encoding != MidSideStandard && encoding != MidSideLegacy {
			return fmt.Errorf("%w: invalid mid/side encoding: %d", ErrInvalidParameter, encoding)
		}

		cfg.midSide = encoding

		return nil
	}
}

// WithAmplifierComponents replaces the amplifier component values of both
// channels.
func WithAmplifierComponents(components circuit.AmplifierComponents) Wavechild670Option {
	return func(cfg *wavechild670Config) error {
		err := components.Validate()
		if err != nil {
			return err
		}

		cfg.components = components

		return nil
	}
}

// WithTubeModel replaces the triode law of all four stages.
func WithTubeModel(model tube.Model) Wavechild670Option {
	return func(cfg *wavechild670Config) error {
		if model == nil {
			return fmt.Errorf("%w: tube model must not be nil", ErrInvalidParameter)
		}

		cfg.model = model

		return nil
	}
}

// WithSidechainComponents replaces the sidechain values of both channels.
func WithSidechainComponents(components SidechainComponents) Wavechild670Option {
	return func(cfg *wavechild670Config) error {
		cfg.sidechain = components
		return nil
	}
}

// Wavechild670 is a two-channel variable-mu tube limiter emulation.
//
// Each channel runs a circuit.VariableMuAmplifier whose gain is set by the
// control voltage on a circuit.LevelTimeConstantCircuit, charged by a
// SidechainAmplifier. In feedback topology the sidechain listens to the
// amplifier output and updates the control voltage after the sample is
// produced, so the loop acts one sample late. In feedforward topology it
// listens to the gained input and the new control voltage applies to the
// same sample.
//
// The processor is single-threaded and not thread-safe. Process never
// allocates and never logs per sample.
type Wavechild670 struct {
	sampleRate float64
	params     Parameters
	midSide    MidSideEncoding
	logger     logrus.FieldLogger

	ampA, ampB     *circuit.VariableMuAmplifier
	scA, scB       *SidechainAmplifier
	levelA, levelB *circuit.LevelTimeConstantCircuit

	levelCapA float64
	levelCapB float64

	metrics Wavechild670Metrics
}

// NewWavechild670 creates a processor with params applied. Sample rate
// must be positive and finite. The circuit starts discharged; call WarmUp
// before processing audio.
func NewWavechild670(sampleRate float64, params Parameters, opts ...Wavechild670Option) (*Wavechild670, error) {
	err := validateSampleRate(sampleRate)
	if err != nil {
		return nil, err
	}

	cfg := wavechild670Config{
		logger:     logrus.StandardLogger(),
		midSide:    MidSideStandard,
		components: circuit.DefaultAmplifierComponents(),
		model:      tube.DefaultRemoteCutoff(),
		sidechain:  DefaultSidechainComponents(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	err = params.Validate()
	if err != nil {
		return nil, err
	}

	w := &Wavechild670{
		sampleRate: sampleRate,
		midSide:    cfg.midSide,
		logger:     cfg.logger,
	}

	w.ampA, err = circuit.NewVariableMuAmplifier(sampleRate, cfg.components, cfg.model)
	if err != nil {
		return nil, err
	}

	w.ampB, err = circuit.NewVariableMuAmplifier(sampleRate, cfg.components, cfg.model)
	if err != nil {
		return nil, err
	}

	w.scA, err = NewSidechainAmplifier(sampleRate, cfg.sidechain)
	if err != nil {
		return nil, err
	}

	w.scB, err = NewSidechainAmplifier(sampleRate, cfg.sidechain)
	if err != nil {
		return nil, err
	}

	presetA, _ := circuit.TimeConstantPreset(params.TimeConstantSelectA)
	presetB, _ := circuit.TimeConstantPreset(params.TimeConstantSelectB)

	w.levelA, err = circuit.NewLevelTimeConstantCircuit(sampleRate, presetA)
	if err != nil {
		return nil, err
	}

	w.levelB, err = circuit.NewLevelTimeConstantCircuit(sampleRate, presetB)
	if err != nil {
		return nil, err
	}

	w.logger.WithFields(logrus.Fields{
		"function":    "NewWavechild670",
		"sample_rate": sampleRate,
		"mid_side":    cfg.midSide.String(),
	}).Info("Creating Wavechild670")

	err = w.SetParameters(params)
	if err != nil {
		return nil, err
	}

	return w, nil
}

// SetParameters validates p and applies it as a whole. On error nothing
// changes. Time-constant changes keep the charge on the level circuits.
func (w *Wavechild670) SetParameters(p Parameters) error {
	err := p.Validate()
	if err != nil {
		w.logger.WithFields(logrus.Fields{
			"function": "SetParameters",
			"error":    err.Error(),
		}).Warn("Rejected parameters")

		return err
	}

	presetA, err := circuit.TimeConstantPreset(p.TimeConstantSelectA)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTimeConstantSelect, err)
	}

	presetB, err := circuit.TimeConstantPreset(p.TimeConstantSelectB)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTimeConstantSelect, err)
	}

	err = w.levelA.SetComponents(presetA)
	if err != nil {
		return err
	}

	err = w.levelB.SetComponents(presetB)
	if err != nil {
		return err
	}

	w.scA.SetThresholds(p.ACThresholdA, p.DCThresholdA)
	w.scB.SetThresholds(p.ACThresholdB, p.DCThresholdB)
	w.params = p

	w.logger.WithFields(logrus.Fields{
		"function":       "SetParameters",
		"input_level_a":  p.InputLevelA,
		"input_level_b":  p.InputLevelB,
		"ac_threshold_a": p.ACThresholdA,
		"ac_threshold_b": p.ACThresholdB,
		"dc_threshold_a": p.DCThresholdA,
		"dc_threshold_b": p.DCThresholdB,
		"time_const_a":   p.TimeConstantSelectA,
		"time_const_b":   p.TimeConstantSelectB,
		"link":           p.SidechainLink,
		"mid_side":       p.MidSide,
		"topology":       p.Topology.String(),
		"output_gain":    p.OutputGain,
		"hard_clip":      p.HardClipOutput,
	}).Info("Parameters applied")

	return nil
}

// Parameters returns the active parameters.
func (w *Wavechild670) Parameters() Parameters { return w.params }

// SampleRate returns the processing sample rate.
func (w *Wavechild670) SampleRate() float64 { return w.sampleRate }

// LevelCapVoltages returns the control voltages of channels A and B.
func (w *Wavechild670) LevelCapVoltages() (a, b float64) { return w.levelCapA, w.levelCapB }

// Metrics returns metering collected since the last reset.
func (w *Wavechild670) Metrics() Wavechild670Metrics { return w.metrics }

// ResetMetrics clears metering.
func (w *Wavechild670) ResetMetrics() { w.metrics = Wavechild670Metrics{} }

// WarmUp runs the circuit on silence for seconds so that bias currents and
// coupling capacitors settle. The first half holds the control voltages;
// the second half runs the sidechain on the amplifier outputs. Metrics are
// cleared afterwards.
func (w *Wavechild670) WarmUp(seconds float64) error {
	if seconds < 0 || !isFinite(seconds) {
		return fmt.Errorf("%w: %f", ErrInvalidDuration, seconds)
	}

	half := int(seconds*w.sampleRate) / 2

	for range half {
		w.ampA.AdvanceAndGetOutputVoltage(0, w.levelCapA)
		w.ampB.AdvanceAndGetOutputVoltage(0, w.levelCapB)
	}

	for range half {
		outA := w.ampA.AdvanceAndGetOutputVoltage(0, w.levelCapA)
		outB := w.ampB.AdvanceAndGetOutputVoltage(0, w.levelCapB)
		w.advanceSidechain(outA, outB)
	}

	w.ResetMetrics()

	w.logger.WithFields(logrus.Fields{
		"function": "WarmUp",
		"seconds":  seconds,
		"samples":  2 * half,
	}).Debug("Warm-up complete")

	return nil
}

// Process processes interleaved stereo frames from in into out. in and out
// must have the same even length and may be the same slice. Every input
// sample is checked before any state advances, so a failing call leaves
// the processor untouched.
func (w *Wavechild670) Process(in, out []float64) error {
	if len(in) != len(out) {
		return fmt.Errorf("%w: input %d, output %d", ErrBufferLength, len(in), len(out))
	}

	if len(in)%2 != 0 {
		return fmt.Errorf("%w: interleaved stereo requires an even length: %d", ErrBufferLength, len(in))
	}

	for i, v := range in {
		if !isFinite(v) {
			return fmt.Errorf("%w: index %d: %f", ErrNonFiniteInput, i, v)
		}
	}

	if len(in) == 0 {
		return nil
	}

	w.metrics.InputPeak = math.Max(w.metrics.InputPeak, vecmath.MaxAbs(in))

	for i := 0; i < len(in); i += 2 {
		out[i], out[i+1] = w.advance(in[i], in[i+1])
	}

	if w.params.OutputGain != 1 {
		vecmath.ScaleBlockInPlace(out, w.params.OutputGain)
	}

	if w.params.HardClipOutput {
		clipped := hardClip(out)
		if clipped > 0 {
			w.metrics.ClippedSamples += clipped

			w.logger.WithFields(logrus.Fields{
				"function": "Process",
				"clipped":  clipped,
				"samples":  len(out),
			}).Warn("Output hard clipped")
		}
	}

	w.metrics.OutputPeak = math.Max(w.metrics.OutputPeak, vecmath.MaxAbs(out))

	return nil
}

// ProcessInterleavedInPlace processes interleaved stereo frames in place.
func (w *Wavechild670) ProcessInterleavedInPlace(buf []float64) error {
	return w.Process(buf, buf)
}

// ProcessStereo processes one frame. Inputs must be finite; unlike Process
// this is not checked outside wcdebug builds.
func (w *Wavechild670) ProcessStereo(left, right float64) (float64, float64) {
	assert.Finite("left input", left)
	assert.Finite("right input", right)

	w.metrics.InputPeak = math.Max(w.metrics.InputPeak, math.Max(math.Abs(left), math.Abs(right)))

	outL, outR := w.advance(left, right)
	outL *= w.params.OutputGain
	outR *= w.params.OutputGain

	if w.params.HardClipOutput {
		if math.Abs(outL) > 1 {
			outL = math.Copysign(1, outL)
			w.metrics.ClippedSamples++
		}

		if math.Abs(outR) > 1 {
			outR = math.Copysign(1, outR)
			w.metrics.ClippedSamples++
		}
	}

	w.metrics.OutputPeak = math.Max(w.metrics.OutputPeak, math.Max(math.Abs(outL), math.Abs(outR)))

	return outL, outR
}

// Reset discharges every circuit and clears metrics. Parameters are kept.
func (w *Wavechild670) Reset() {
	w.ampA.Reset()
	w.ampB.Reset()
	w.scA.Reset()
	w.scB.Reset()
	w.levelA.Reset()
	w.levelB.Reset()
	w.levelCapA = 0
	w.levelCapB = 0
	w.ResetMetrics()
}

// advance runs one frame up to, but excluding, output gain and clipping.
func (w *Wavechild670) advance(left, right float64) (float64, float64) {
	a, b := left, right
	if w.params.MidSide {
		a, b = w.encodeMidSide(left, right)
	}

	a *= w.params.InputLevelA
	b *= w.params.InputLevelB

	if w.params.Topology == DynamicsTopologyFeedforward {
		w.advanceSidechain(a, b)
	}

	outA := w.ampA.AdvanceAndGetOutputVoltage(a, w.levelCapA)
	outB := w.ampB.AdvanceAndGetOutputVoltage(b, w.levelCapB)

	if w.params.Topology == DynamicsTopologyFeedback {
		w.advanceSidechain(outA, outB)
	}

	if w.params.MidSide {
		outA, outB = (outA+outB)*invSqrt2, (outA-outB)*invSqrt2
	}

	return outA, outB
}

func (w *Wavechild670) encodeMidSide(left, right float64) (float64, float64) {
	if w.midSide == MidSideLegacy {
		return (left + left) * invSqrt2, (right - right) * invSqrt2
	}

	return (left + right) * invSqrt2, (left - right) * invSqrt2
}

func (w *Wavechild670) advanceSidechain(a, b float64) {
	currentA := w.scA.AdvanceAndGetCurrent(a, w.levelCapA)
	currentB := w.scB.AdvanceAndGetCurrent(b, w.levelCapB)

	if w.params.SidechainLink {
		current := 0.5 * (currentA + currentB)
		v := 0.5 * (w.levelA.Advance(current) + w.levelB.Advance(current))
		w.levelCapA, w.levelCapB = v, v
	} else {
		w.levelCapA = w.levelA.Advance(currentA)
		w.levelCapB = w.levelB.Advance(currentB)
	}

	assert.Finite("level cap voltage A", w.levelCapA)
	assert.Finite("level cap voltage B", w.levelCapB)

	w.metrics.MaxLevelCapA = math.Max(w.metrics.MaxLevelCapA, w.levelCapA)
	w.metrics.MaxLevelCapB = math.Max(w.metrics.MaxLevelCapB, w.levelCapB)
}

func hardClip(buf []float64) int {
	clipped := 0

	for i, v := range buf {
		if v > 1 {
			buf[i] = 1
			clipped++
		} else if v < -1 {
			buf[i] = -1
			clipped++
		}
	}

	return clipped
}
