// Package thd measures the level and harmonic distortion of a steady tone.
package thd

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	defaultMaxHarmonics = 9
	defaultCaptureBins  = 3
)

// ErrEmptySignal is returned when there is nothing to analyse.
var ErrEmptySignal = errors.New("thd: signal must not be empty")

// Config holds THD analysis parameters.
type Config struct {
	SampleRate float64
	// FundamentalFreq pins the fundamental. Zero searches for the largest
	// bin between 20 Hz and Nyquist.
	FundamentalFreq float64
	// MaxHarmonics is the highest harmonic order included (default 9).
	MaxHarmonics int
	// CaptureBins is the half width, in bins of the unpadded signal, of the
	// band summed around each harmonic (default 3).
	CaptureBins int
}

// Result holds THD measurement results.
//
//nolint:revive
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64   // peak amplitude
	THD              float64   // sqrt(sum Hk^2) / H1
	THD_dB           float64   // 20*log10(THD)
	EvenHD           float64   // even-order part of THD
	OddHD            float64   // odd-order part of THD
	Harmonics        []float64 // Hk/H1 for k = 2..MaxHarmonics
}

// AnalyzeSignal windows signal with a periodic Hann window, transforms it
// with a zero-padded power-of-two FFT, and measures the fundamental and its
// harmonics.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptySignal
	}

	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return Result{}, fmt.Errorf("thd: sample rate must be positive and finite: %f", cfg.SampleRate)
	}

	if cfg.FundamentalFreq < 0 || cfg.FundamentalFreq >= cfg.SampleRate/2 {
		return Result{}, fmt.Errorf("thd: fundamental must be in [0, nyquist): %f", cfg.FundamentalFreq)
	}

	if cfg.MaxHarmonics <= 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}

	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = defaultCaptureBins
	}

	n := len(signal)
	fftSize := nextPowerOf2(n)

	windowed := make([]float64, n)
	copy(windowed, signal)

	coeffs := hann(n)
	vecmath.MulBlockInPlace(windowed, coeffs)

	in := make([]complex128, fftSize)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Result{}, fmt.Errorf("thd: fft plan: %w", err)
	}

	spectrum := make([]complex128, fftSize)

	err = plan.Forward(spectrum, in)
	if err != nil {
		return Result{}, fmt.Errorf("thd: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(spectrum[i])
		im[i] = imag(spectrum[i])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	binHz := cfg.SampleRate / float64(fftSize)
	capture := int(math.Ceil(float64(cfg.CaptureBins) * float64(fftSize) / float64(n)))

	fundamentalBin := findFundamental(power, cfg.FundamentalFreq, binHz, capture)
	fundamentalPower := bandPower(power, fundamentalBin, capture)

	res := Result{FundamentalFreq: float64(fundamentalBin) * binHz}
	if fundamentalPower <= 0 {
		res.THD_dB = math.Inf(-1)
		return res, nil
	}

	// One-sided Parseval: P = fftSize * A^2 * sum(w^2) / 4.
	res.FundamentalLevel = 2 * math.Sqrt(fundamentalPower/(float64(fftSize)*vecmath.DotProduct(coeffs, coeffs)))

	var even, odd float64

	res.Harmonics = make([]float64, 0, cfg.MaxHarmonics-1)

	for k := 2; k <= cfg.MaxHarmonics; k++ {
		bin := int(math.Round(float64(k) * res.FundamentalFreq / binHz))
		if bin+capture >= bins {
			break
		}

		p := bandPower(power, bin, capture) / fundamentalPower
		res.Harmonics = append(res.Harmonics, math.Sqrt(p))

		if k%2 == 0 {
			even += p
		} else {
			odd += p
		}
	}

	res.THD = math.Sqrt(even + odd)
	res.EvenHD = math.Sqrt(even)
	res.OddHD = math.Sqrt(odd)
	res.THD_dB = ratioToDB(res.THD)

	return res, nil
}

func findFundamental(power []float64, freq, binHz float64, capture int) int {
	if freq > 0 {
		return clampInt(int(math.Round(freq/binHz)), capture, len(power)-1)
	}

	lo := clampInt(int(math.Ceil(20/binHz)), capture, len(power)-1)
	best := lo

	for i := lo; i < len(power); i++ {
		if power[i] > power[best] {
			best = i
		}
	}

	return best
}

func bandPower(power []float64, bin, capture int) float64 {
	lo := max(bin-capture, 0)
	hi := min(bin+capture, len(power)-1)

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += power[i]
	}

	return sum
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}

	return w
}

func ratioToDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}

	if val > hi {
		return hi
	}

	return val
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
