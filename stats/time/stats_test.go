package time

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)

	assert.Zero(t, s.Length)
	assert.True(t, math.IsInf(s.RMS_dB, -1))
	assert.True(t, math.IsInf(s.Peak_dB, -1))
	assert.True(t, math.IsInf(s.CrestFactor_dB, -1))
}

func TestCalculateSine(t *testing.T) {
	const n = 4800

	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 0.5 * math.Sin(2*math.Pi*100*float64(i)/48000)
	}

	s := Calculate(signal)

	assert.Equal(t, n, s.Length)
	assert.InDelta(t, 0, s.DC, 1e-12)
	assert.InDelta(t, 0.5/math.Sqrt2, s.RMS, 1e-9)
	assert.InDelta(t, 0.5, s.Peak, 1e-9)
	assert.InDelta(t, math.Sqrt2, s.CrestFactor, 1e-6)
	assert.InDelta(t, 20*math.Log10(math.Sqrt2), s.CrestFactor_dB, 1e-5)
	assert.InDelta(t, 0.5*2*math.Pi*100/48000, s.MaxSlew, 1e-5)
	assert.InDelta(t, 19, s.ZeroCrossings, 1)
}

func TestHelpers(t *testing.T) {
	signal := []float64{0, 3, -4, 1}

	assert.InDelta(t, 0, DC(signal), 1e-12)
	assert.InDelta(t, math.Sqrt(26.0/4), RMS(signal), 1e-12)
	assert.InDelta(t, 4, Peak(signal), 1e-12)
	assert.InDelta(t, 4/math.Sqrt(26.0/4), CrestFactor(signal), 1e-12)
	assert.InDelta(t, 7, MaxSlew(signal), 1e-12)
	assert.Equal(t, 2, ZeroCrossings(signal))

	assert.Zero(t, RMS(nil))
	assert.Zero(t, Peak(nil))
	assert.Zero(t, DC(nil))
	assert.Zero(t, CrestFactor(make([]float64, 8)))
}

func TestStreamingMatchesBatch(t *testing.T) {
	signal := []float64{0.1, -0.4, 0.9, 0.2, -0.7, -0.1, 0.3, 0.8, -0.6}
	want := Calculate(signal)

	s := NewStreamingStats()
	s.Update(signal[:2])
	s.Update(nil)
	s.Update(signal[2:5])
	s.Update(signal[5:])

	got := s.Result()

	require.Equal(t, want.Length, got.Length)
	assert.InDelta(t, want.DC, got.DC, 1e-12)
	assert.InDelta(t, want.RMS, got.RMS, 1e-12)
	assert.InDelta(t, want.Peak, got.Peak, 1e-12)
	assert.InDelta(t, want.MaxSlew, got.MaxSlew, 1e-12)
	assert.Equal(t, want.ZeroCrossings, got.ZeroCrossings)

	s.Reset()
	assert.Zero(t, s.Result().Length)
}
