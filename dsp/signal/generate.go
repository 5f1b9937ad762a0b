package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/wavechild670/dsp/core"
)

// Generator creates deterministic test and measurement signals at a shared
// sample rate.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed sets the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Sine generates a sine wave starting at phase zero.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.ToneBurst(freqHz, amplitude, samples, samples)
}

// ToneBurst generates a sine of onSamples followed by silence up to
// samples.
func (g *Generator) ToneBurst(freqHz, amplitude float64, onSamples, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("tone samples must be > 0: %d", samples)
	}

	if onSamples < 0 || onSamples > samples {
		return nil, fmt.Errorf("tone burst length must be in [0, %d]: %d", samples, onSamples)
	}

	if freqHz < 0 || freqHz >= g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("tone frequency must be in [0, nyquist): %f", freqHz)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	for i := range onSamples {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// Step generates zeros up to start and level from start on.
func (g *Generator) Step(level float64, start, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("step samples must be > 0: %d", samples)
	}

	if start < 0 {
		return nil, fmt.Errorf("step start must be >= 0: %d", start)
	}

	out := make([]float64, samples)
	for i := start; i < samples; i++ {
		out[i] = level
	}

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}

	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out, nil
}
