package circuit

import (
	"fmt"

	"github.com/cwbudde/wavechild670/dsp/wdf"
)

// NumTimeConstantPresets is the number of selectable time-constant presets.
const NumTimeConstantPresets = 6

// LevelComponents describes the control-voltage network
//
//	C1 || R1 || (R2 + C2) || (R3 + C3)
//
// driven by the sidechain current. C1 sets the attack together with the
// sidechain source resistance, R1 the release. Finite R2 and R3 connect the
// larger capacitors for program-dependent release.
type LevelComponents struct {
	C1, C2, C3 float64 // farads
	R1, R2, R3 float64 // ohms
}

// Ordered from fastest to slowest release.
var timeConstantPresets = [NumTimeConstantPresets]LevelComponents{
	{C1: 2e-6, C2: 8e-6, C3: 20e-6, R1: 150e3, R2: 1e9, R3: 1e9},
	{C1: 2e-6, C2: 8e-6, C3: 20e-6, R1: 400e3, R2: 1e9, R3: 1e9},
	{C1: 4e-6, C2: 8e-6, C3: 20e-6, R1: 500e3, R2: 1e9, R3: 1e9},
	{C1: 8e-6, C2: 8e-6, C3: 20e-6, R1: 625e3, R2: 1e9, R3: 1e9},
	{C1: 2e-6, C2: 8e-6, C3: 20e-6, R1: 1e6, R2: 100e3, R3: 1e9},
	{C1: 4e-6, C2: 8e-6, C3: 20e-6, R1: 0.8e6, R2: 100e3, R3: 1e6},
}

// TimeConstantPreset returns the components of preset n in [1, 6].
func TimeConstantPreset(n int) (LevelComponents, error) {
	if n < 1 || n > NumTimeConstantPresets {
		return LevelComponents{}, fmt.Errorf("%w: %d", ErrInvalidPreset, n)
	}

	return timeConstantPresets[n-1], nil
}

// Validate reports the first non-physical value.
func (c LevelComponents) Validate() error {
	return requirePositive(
		named{"C1", c.C1}, named{"C2", c.C2}, named{"C3", c.C3},
		named{"R1", c.R1}, named{"R2", c.R2}, named{"R3", c.R3},
	)
}

// ReleaseTime returns the primary release time constant R1*C1 in seconds.
func (c LevelComponents) ReleaseTime() float64 {
	return c.R1 * c.C1
}

// LevelTimeConstantCircuit integrates the sidechain current into the
// control voltage applied to the variable-mu grids.
type LevelTimeConstantCircuit struct {
	c1, c2, c3 *wdf.Capacitor
	r1, r2, r3 *wdf.Resistor
	tree       *wdf.Parallel
	root       *wdf.CurrentSourceRoot

	components LevelComponents
	voltage    float64
}

// NewLevelTimeConstantCircuit builds the network with components c.
func NewLevelTimeConstantCircuit(sampleRate float64, c LevelComponents) (*LevelTimeConstantCircuit, error) {
	err := validateSampleRate(sampleRate)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	l := &LevelTimeConstantCircuit{
		c1:         wdf.NewCapacitor(c.C1, sampleRate),
		c2:         wdf.NewCapacitor(c.C2, sampleRate),
		c3:         wdf.NewCapacitor(c.C3, sampleRate),
		r1:         wdf.NewResistor(c.R1),
		r2:         wdf.NewResistor(c.R2),
		r3:         wdf.NewResistor(c.R3),
		components: c,
	}

	l.tree = wdf.NewParallel(
		wdf.NewParallel(l.c1, l.r1),
		wdf.NewParallel(wdf.NewSeries(l.r2, l.c2), wdf.NewSeries(l.r3, l.c3)),
	)
	l.root = wdf.NewCurrentSourceRoot(l.tree)

	return l, nil
}

// SetComponents replaces all component values. Stored capacitor waves are
// kept, so the control voltage continues from its current state.
func (l *LevelTimeConstantCircuit) SetComponents(c LevelComponents) error {
	err := c.Validate()
	if err != nil {
		return err
	}

	l.c1.SetCapacitance(c.C1)
	l.c2.SetCapacitance(c.C2)
	l.c3.SetCapacitance(c.C3)
	l.r1.SetResistance(c.R1)
	l.r2.SetResistance(c.R2)
	l.r3.SetResistance(c.R3)
	l.tree.Refresh()

	l.components = c

	return nil
}

// Components returns the current component values.
func (l *LevelTimeConstantCircuit) Components() LevelComponents { return l.components }

// Advance injects current (amperes) for one sample and returns the control
// voltage.
func (l *LevelTimeConstantCircuit) Advance(current float64) float64 {
	l.voltage = l.root.Advance(current)
	return l.voltage
}

// Voltage returns the control voltage of the last sample.
func (l *LevelTimeConstantCircuit) Voltage() float64 { return l.voltage }

// Reset discharges all capacitors.
func (l *LevelTimeConstantCircuit) Reset() {
	l.tree.Reset()
	l.voltage = 0
}
