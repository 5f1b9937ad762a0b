package tube

import (
	"fmt"
	"math"
)

// Model is a static triode law.
type Model interface {
	// Current returns the plate current in amperes and its partial
	// derivatives with respect to vgk and vak.
	Current(vgk, vak float64) (ia, dIdVgk, dIdVak float64)
}

const (
	defaultPerveance      = 3.5e-4
	defaultMu             = 20.0
	defaultCutoffSoftness = 0.2
	defaultKneeVoltage    = 5.0
)

// RemoteCutoff is a remote-cutoff triode law:
//
//	u  = vgk + vak/mu
//	E  = softplus(beta*u)/beta
//	ia = k * E^1.5 * (1 - exp(-vak/vc))
//
// The softplus replaces the hard cutoff of the Child-Langmuir law with an
// exponential tail, so transconductance falls smoothly as the grid is driven
// negative. The plate knee term pulls current to zero as vak approaches 0.
// For vak <= 0 no current flows.
type RemoteCutoff struct {
	k    float64
	mu   float64
	beta float64
	vc   float64
}

// RemoteCutoffOption configures a RemoteCutoff.
type RemoteCutoffOption func(*RemoteCutoff) error

// WithPerveance sets k in A/V^1.5.
func WithPerveance(k float64) RemoteCutoffOption {
	return func(m *RemoteCutoff) error {
		if !positiveFinite(k) {
			return fmt.Errorf("tube perveance must be positive and finite: %g", k)
		}

		m.k = k

		return nil
	}
}

// WithAmplificationFactor sets mu.
func WithAmplificationFactor(mu float64) RemoteCutoffOption {
	return func(m *RemoteCutoff) error {
		if !positiveFinite(mu) {
			return fmt.Errorf("tube amplification factor must be positive and finite: %g", mu)
		}

		m.mu = mu

		return nil
	}
}

// WithCutoffSoftness sets beta in 1/V. Smaller values stretch the tail.
func WithCutoffSoftness(beta float64) RemoteCutoffOption {
	return func(m *RemoteCutoff) error {
		if !positiveFinite(beta) {
			return fmt.Errorf("tube cutoff softness must be positive and finite: %g", beta)
		}

		m.beta = beta

		return nil
	}
}

// WithKneeVoltage sets the plate knee voltage vc.
func WithKneeVoltage(vc float64) RemoteCutoffOption {
	return func(m *RemoteCutoff) error {
		if !positiveFinite(vc) {
			return fmt.Errorf("tube knee voltage must be positive and finite: %g", vc)
		}

		m.vc = vc

		return nil
	}
}

// NewRemoteCutoff returns a remote-cutoff triode. Without options it models
// one section of a 6386-like dual triode.
func NewRemoteCutoff(opts ...RemoteCutoffOption) (*RemoteCutoff, error) {
	m := &RemoteCutoff{
		k:    defaultPerveance,
		mu:   defaultMu,
		beta: defaultCutoffSoftness,
		vc:   defaultKneeVoltage,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(m)
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

// DefaultRemoteCutoff returns the default remote-cutoff triode.
func DefaultRemoteCutoff() *RemoteCutoff {
	return &RemoteCutoff{
		k:    defaultPerveance,
		mu:   defaultMu,
		beta: defaultCutoffSoftness,
		vc:   defaultKneeVoltage,
	}
}

// Mu returns the amplification factor.
func (m *RemoteCutoff) Mu() float64 { return m.mu }

// Current implements Model.
func (m *RemoteCutoff) Current(vgk, vak float64) (ia, dIdVgk, dIdVak float64) {
	if vak <= 0 {
		return 0, 0, 0
	}

	knee := mathExp(-vak / m.vc)
	fa := 1 - knee
	dfa := knee / m.vc

	x := m.beta * (vgk + vak/m.mu)
	e := softplus(x) / m.beta
	root := mathSqrt(e)

	i := m.k * e * root
	di := 1.5 * m.k * root * sigmoid(x)

	return i * fa, di * fa, di/m.mu*fa + i*dfa
}

func softplus(x float64) float64 {
	if x > 30 {
		return x
	}

	return mathLog1p(mathExp(x))
}

func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + mathExp(-x))
	}

	e := mathExp(x)

	return e / (1 + e)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
