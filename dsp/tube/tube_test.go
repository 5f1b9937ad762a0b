package tube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteCutoffNoCurrentWithoutPlateVoltage(t *testing.T) {
	m := DefaultRemoteCutoff()

	for _, vak := range []float64{0, -1, -250} {
		ia, dg, da := m.Current(0, vak)
		assert.Zero(t, ia)
		assert.Zero(t, dg)
		assert.Zero(t, da)
	}
}

func TestRemoteCutoffMonotonic(t *testing.T) {
	m := DefaultRemoteCutoff()

	prev := -1.0
	for vgk := -40.0; vgk <= 0; vgk += 0.5 {
		ia, dg, da := m.Current(vgk, 200)
		require.Greater(t, ia, prev, "vgk=%v", vgk)
		require.Positive(t, dg)
		require.Positive(t, da)

		prev = ia
	}

	prev = -1.0
	for vak := 1.0; vak <= 300; vak += 5 {
		ia, _, _ := m.Current(-2, vak)
		require.Greater(t, ia, prev, "vak=%v", vak)

		prev = ia
	}
}

func TestRemoteCutoffTransconductanceFallsWithBias(t *testing.T) {
	m := DefaultRemoteCutoff()

	_, gmLight, _ := m.Current(-2, 200)
	_, gmHeavy, _ := m.Current(-20, 200)

	assert.Greater(t, gmLight, 4*gmHeavy)
	assert.Positive(t, gmHeavy)
}

func TestRemoteCutoffDerivativesMatchFiniteDifference(t *testing.T) {
	m := DefaultRemoteCutoff()

	points := []struct {
		vgk float64
		vak float64
	}{
		{vgk: -2, vak: 200},
		{vgk: -12, vak: 150},
		{vgk: 0.5, vak: 3},
		{vgk: -30, vak: 250},
	}

	const h = 1e-6

	for _, p := range points {
		_, dg, da := m.Current(p.vgk, p.vak)

		up, _, _ := m.Current(p.vgk+h, p.vak)
		dn, _, _ := m.Current(p.vgk-h, p.vak)
		fdG := (up - dn) / (2 * h)

		up, _, _ = m.Current(p.vgk, p.vak+h)
		dn, _, _ = m.Current(p.vgk, p.vak-h)
		fdA := (up - dn) / (2 * h)

		assert.InDelta(t, fdG, dg, 1e-6*math.Max(1e-6, math.Abs(fdG))+1e-12)
		assert.InDelta(t, fdA, da, 1e-6*math.Max(1e-6, math.Abs(fdA))+1e-12)
	}
}

func TestNewRemoteCutoffOptions(t *testing.T) {
	m, err := NewRemoteCutoff(WithAmplificationFactor(30), nil, WithPerveance(1e-3))
	require.NoError(t, err)
	assert.InDelta(t, 30.0, m.Mu(), 0)

	def := DefaultRemoteCutoff()
	ia, _, _ := m.Current(-2, 200)
	iaDef, _, _ := def.Current(-2, 200)
	assert.NotEqual(t, iaDef, ia)

	invalid := []RemoteCutoffOption{
		WithPerveance(0),
		WithAmplificationFactor(math.NaN()),
		WithCutoffSoftness(-1),
		WithKneeVoltage(math.Inf(1)),
	}
	for _, opt := range invalid {
		_, err := NewRemoteCutoff(opt)
		assert.Error(t, err)
	}
}
