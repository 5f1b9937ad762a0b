package wdf

// UnitDelayPort is one side of a BidirectionalUnitDelay. It behaves as a
// resistive port whose reflected wave is the wave delivered to the opposite
// side during the previous sample.
type UnitDelayPort struct {
	waves
	r float64
}

func (u *UnitDelayPort) PortResistance() float64 { return u.r }

func (u *UnitDelayPort) Reflect() float64 { return u.b }

func (u *UnitDelayPort) Incident(a float64) { u.a = a }

// Reset clears the stored waves of this side only.
func (u *UnitDelayPort) Reset() {
	u.waves = waves{}
}

// BidirectionalUnitDelay joins two trees through a one-sample delayed wave
// exchange. It breaks a delay-free loop between two nonlinear stages sharing
// a node, at the cost of one sample of coupling lag.
//
// Both trees must be evaluated before Advance is called, once per sample.
type BidirectionalUnitDelay struct {
	ports [2]*UnitDelayPort
}

// NewBidirectionalUnitDelay returns a delay whose two ports present r ohms.
func NewBidirectionalUnitDelay(r float64) *BidirectionalUnitDelay {
	return &BidirectionalUnitDelay{
		ports: [2]*UnitDelayPort{{r: r}, {r: r}},
	}
}

// Port returns side 0 or side 1.
func (d *BidirectionalUnitDelay) Port(side int) *UnitDelayPort {
	return d.ports[side&1]
}

// Advance hands each side's incident wave to the other side as its next
// reflected wave.
func (d *BidirectionalUnitDelay) Advance() {
	p, q := d.ports[0], d.ports[1]
	p.b, q.b = q.a, p.a
}

// Reset clears both sides.
func (d *BidirectionalUnitDelay) Reset() {
	d.ports[0].Reset()
	d.ports[1].Reset()
}
