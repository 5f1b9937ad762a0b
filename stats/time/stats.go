// Package time provides time-domain level statistics for rendered audio.
package time

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	MaxSlew        float64 // max |x[n] - x[n-1]|
	ZeroCrossings  int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptyStats() Stats {
	return Stats{
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

func finish(s Stats, sum, sumSq float64) Stats {
	n := float64(s.Length)
	s.DC = sum / n
	s.RMS = math.Sqrt(sumSq / n)
	s.RMS_dB = ampTodB(s.RMS)
	s.Peak_dB = ampTodB(s.Peak)

	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
		s.CrestFactor_dB = ampTodB(s.CrestFactor)
	} else {
		s.CrestFactor_dB = math.Inf(-1)
	}

	return s
}

// Calculate computes all statistics of signal.
func Calculate(signal []float64) Stats {
	if len(signal) == 0 {
		return emptyStats()
	}

	s := Stats{
		Length:        len(signal),
		Peak:          Peak(signal),
		MaxSlew:       MaxSlew(signal),
		ZeroCrossings: ZeroCrossings(signal),
	}

	return finish(s, vecmath.Sum(signal), vecmath.DotProduct(signal, signal))
}

// RMS returns the root-mean-square level of signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(vecmath.DotProduct(signal, signal) / float64(len(signal)))
}

// DC returns the mean of signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return vecmath.Sum(signal) / float64(len(signal))
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return vecmath.MaxAbs(signal)
}

// CrestFactor returns peak / RMS, or 0 for silence.
func CrestFactor(signal []float64) float64 {
	rms := RMS(signal)
	if rms == 0 {
		return 0
	}

	return Peak(signal) / rms
}

// MaxSlew returns the largest sample-to-sample step.
func MaxSlew(signal []float64) float64 {
	slew := 0.0
	for i := 1; i < len(signal); i++ {
		slew = math.Max(slew, math.Abs(signal[i]-signal[i-1]))
	}

	return slew
}

// ZeroCrossings counts sign changes between adjacent samples.
func ZeroCrossings(signal []float64) int {
	count := 0

	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}

// StreamingStats accumulates statistics over consecutive blocks. Slew and
// zero crossings are tracked across block boundaries.
type StreamingStats struct {
	s     Stats
	sum   float64
	sumSq float64
	last  float64
}

// NewStreamingStats returns an empty accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update folds samples into the running statistics.
func (s *StreamingStats) Update(samples []float64) {
	if len(samples) == 0 {
		return
	}

	if s.s.Length > 0 {
		s.s.MaxSlew = math.Max(s.s.MaxSlew, math.Abs(samples[0]-s.last))
		if s.last*samples[0] < 0 {
			s.s.ZeroCrossings++
		}
	}

	s.s.Length += len(samples)
	s.s.Peak = math.Max(s.s.Peak, vecmath.MaxAbs(samples))
	s.s.MaxSlew = math.Max(s.s.MaxSlew, MaxSlew(samples))
	s.s.ZeroCrossings += ZeroCrossings(samples)
	s.sum += vecmath.Sum(samples)
	s.sumSq += vecmath.DotProduct(samples, samples)
	s.last = samples[len(samples)-1]
}

// Result returns the statistics of everything seen so far.
func (s *StreamingStats) Result() Stats {
	if s.s.Length == 0 {
		return emptyStats()
	}

	return finish(s.s, s.sum, s.sumSq)
}

// Reset clears the accumulator.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
