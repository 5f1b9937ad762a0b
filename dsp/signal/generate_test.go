package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/wavechild670/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 1, 64)
	require.NoError(t, err)
	assert.Len(t, s, 64)
	assert.InDelta(t, 48000.0, g.Config().SampleRate, 0)
}

func TestToneBurst(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.ToneBurst(1000, 0.5, 480, 960)
	require.NoError(t, err)
	require.Len(t, s, 960)

	assert.InDelta(t, 0.5*math.Sin(2*math.Pi*1000*12/48000), s[12], 1e-15)

	for i := 480; i < 960; i++ {
		require.Zero(t, s[i], "index %d", i)
	}

	_, err = g.ToneBurst(1000, 1, 10, 5)
	assert.Error(t, err)
	_, err = g.ToneBurst(30000, 1, 10, 10)
	assert.Error(t, err)
	_, err = g.Sine(100, 1, 0)
	assert.Error(t, err)
}

func TestStep(t *testing.T) {
	g := NewGenerator()
	s, err := g.Step(0.7, 3, 6)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0.7, 0.7, 0.7}, s)

	_, err = g.Step(1, -1, 6)
	assert.Error(t, err)
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(42)

	a, err := g.WhiteNoise(1, 16)
	require.NoError(t, err)
	b, err := g.WhiteNoise(1, 16)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	g.SetSeed(43)
	c, err := g.WhiteNoise(1, 16)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	for _, v := range a {
		assert.LessOrEqual(t, math.Abs(v), 1.0)
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	frames, err := Interleave([]float64{1, 2, 3}, []float64{-1, -2, -3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1, 2, -2, 3, -3}, frames)

	l, r, err := Deinterleave(frames)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, l)
	assert.Equal(t, []float64{-1, -2, -3}, r)

	_, err = Interleave([]float64{1}, nil)
	assert.Error(t, err)

	_, _, err = Deinterleave([]float64{1, 2, 3})
	assert.Error(t, err)
}
