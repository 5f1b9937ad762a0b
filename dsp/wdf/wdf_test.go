package wdf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 48000.0

func TestRCStepMatchesAnalytic(t *testing.T) {
	r := NewResistor(1000)
	c := NewCapacitor(1e-6, testSampleRate)
	root := NewVoltageSourceRoot(NewSeries(r, c))

	tau := 1000 * 1e-6
	for n := range 480 {
		root.Advance(1)

		// The bilinear step response lags the analog one by half a sample.
		want := 1 - math.Exp(-(float64(n)+0.5)/testSampleRate/tau)
		require.InDelta(t, want, Voltage(c), 1e-3, "sample %d", n)
	}

	assert.InDelta(t, 1.0, Voltage(c)+Voltage(r), 1e-12)
}

func TestVoltageDivider(t *testing.T) {
	tests := []struct {
		name string
		r1   float64
		r2   float64
		r3   float64
	}{
		{name: "equal", r1: 1000, r2: 1000, r3: 1000},
		{name: "skewed", r1: 47, r2: 10e3, r3: 220},
		{name: "high impedance", r1: 600, r2: 1e6, r3: 1e9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load := NewResistor(tt.r2)
			root := NewVoltageSourceRoot(NewSeries(NewResistor(tt.r1), NewParallel(load, NewResistor(tt.r3))))
			root.Advance(2)

			rp := 1 / (1/tt.r2 + 1/tt.r3)
			assert.InDelta(t, 2*rp/(tt.r1+rp), Voltage(load), 1e-12)
		})
	}
}

func TestKirchhoffCurrentAtParallelNode(t *testing.T) {
	a := NewResistor(330)
	b := NewResistor(1500)
	c := NewCapacitor(2.2e-6, testSampleRate)
	par := NewParallel(a, NewParallel(b, c))
	root := NewCurrentSourceRoot(par)

	for range 100 {
		v := root.Advance(1e-3)
		assert.InDelta(t, v, Voltage(a), 1e-12)
		assert.InDelta(t, v, Voltage(c), 1e-12)
		assert.InDelta(t, 1e-3, Current(a)+Current(b)+Current(c), 1e-12)
	}
}

func TestCurrentSourceSettlesToOhmsLaw(t *testing.T) {
	c := NewCapacitor(1e-6, testSampleRate)
	root := NewCurrentSourceRoot(NewParallel(c, NewResistor(1000)))

	var v float64
	for range 48000 {
		v = root.Advance(1e-3)
	}

	assert.InDelta(t, 1.0, v, 1e-9)
	assert.InDelta(t, 1.0, Voltage(c), 1e-9)
}

func TestInductorBecomesShortAtDC(t *testing.T) {
	l := NewInductor(1e-3, testSampleRate)
	r := NewResistor(10)
	root := NewVoltageSourceRoot(NewSeries(r, l))

	for range 480 {
		root.Advance(1)
	}

	assert.InDelta(t, 0, Voltage(l), 1e-9)
	assert.InDelta(t, 0.1, Current(l), 1e-9)
}

func TestIdealTransformerScaling(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
	}{
		{name: "step up", ratio: 2},
		{name: "step down", ratio: 0.5},
		{name: "antiphase", ratio: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load := NewResistor(400)
			xf := NewIdealTransformer(tt.ratio, load)
			require.InDelta(t, 400/(tt.ratio*tt.ratio), xf.PortResistance(), 1e-12)

			src := NewResistor(xf.PortResistance())
			root := NewVoltageSourceRoot(NewSeries(src, xf))
			root.Advance(1)

			assert.InDelta(t, 0.5, Voltage(xf), 1e-12)
			assert.InDelta(t, 0.5*tt.ratio, Voltage(load), 1e-12)
			// Power is conserved across the ideal transformer.
			assert.InDelta(t, Voltage(xf)*Current(xf), Voltage(load)*Current(load), 1e-12)
		})
	}
}

func TestRefreshAfterComponentChange(t *testing.T) {
	r1 := NewResistor(100)
	c := NewCapacitor(1e-6, testSampleRate)
	s := NewSeries(r1, NewParallel(c, NewResistor(1000)))

	before := s.PortResistance()

	r1.SetResistance(200)
	c.SetCapacitance(2e-6)
	s.Refresh()

	rc := 1 / (2 * 2e-6 * testSampleRate)
	want := 200 + 1/(1/rc+1/1000.0)
	assert.NotEqual(t, before, s.PortResistance())
	assert.InDelta(t, want, s.PortResistance(), 1e-9)
	assert.InDelta(t, 2e-6, c.Capacitance(), 0)
}

func TestBidirectionalUnitDelayExchange(t *testing.T) {
	d := NewBidirectionalUnitDelay(1)
	left := NewVoltageSourceRoot(NewSeries(NewResistor(1), d.Port(0)))
	right := NewVoltageSourceRoot(NewSeries(NewResistor(1), d.Port(1)))

	left.Advance(1)
	right.Advance(0)

	aLeft, _ := d.Port(0).Waves()
	require.InDelta(t, 1.0, aLeft, 1e-12)
	assert.Zero(t, d.Port(1).Reflect(), "exchange happens only on Advance")

	d.Advance()

	assert.InDelta(t, aLeft, d.Port(1).Reflect(), 0)
	assert.Zero(t, d.Port(0).Reflect())

	d.Reset()
	assert.Zero(t, d.Port(1).Reflect())
}

func TestResetClearsState(t *testing.T) {
	c := NewCapacitor(1e-6, testSampleRate)
	l := NewInductor(1e-3, testSampleRate)
	s := NewSeries(NewResistor(100), NewSeries(c, l))
	root := NewVoltageSourceRoot(s)

	for range 10 {
		root.Advance(1)
	}

	s.Reset()

	assert.Zero(t, c.Reflect())
	assert.Zero(t, l.Reflect())
	assert.Zero(t, Voltage(s))
}
