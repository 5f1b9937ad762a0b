package wdf

// Port is a one-port wave digital element or subtree.
//
// Reflect computes the reflected wave for the current sample and must be
// called exactly once before Incident.
type Port interface {
	PortResistance() float64
	Reflect() float64
	Incident(a float64)
	Waves() (a, b float64)
	Reset()
}

// Refresher is implemented by adaptors whose port resistance depends on
// their children. Refresh must be called after changing component values
// inside the subtree.
type Refresher interface {
	Refresh()
}

// Voltage returns the port voltage of p for the most recent sample.
func Voltage(p Port) float64 {
	a, b := p.Waves()
	return 0.5 * (a + b)
}

// Current returns the current flowing into p for the most recent sample.
func Current(p Port) float64 {
	a, b := p.Waves()
	return 0.5 * (a - b) / p.PortResistance()
}

// Refresh recomputes port resistances of p and all adaptors below it.
func Refresh(p Port) {
	if r, ok := p.(Refresher); ok {
		r.Refresh()
	}
}

type waves struct {
	a float64
	b float64
}

func (w *waves) Waves() (a, b float64) { return w.a, w.b }
