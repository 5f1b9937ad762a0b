package wdf

// Series connects two ports in series. Its port resistance is R1 + R2.
type Series struct {
	waves
	p1, p2 Port
	r      float64
	gamma  float64
	b1, b2 float64
}

// NewSeries returns a series adaptor over p1 and p2.
func NewSeries(p1, p2 Port) *Series {
	s := &Series{p1: p1, p2: p2}
	s.Refresh()

	return s
}

// Refresh recomputes the adaptor from its children.
func (s *Series) Refresh() {
	Refresh(s.p1)
	Refresh(s.p2)

	r1 := s.p1.PortResistance()
	s.r = r1 + s.p2.PortResistance()
	s.gamma = r1 / s.r
}

func (s *Series) PortResistance() float64 { return s.r }

func (s *Series) Reflect() float64 {
	s.b1 = s.p1.Reflect()
	s.b2 = s.p2.Reflect()
	s.b = s.b1 + s.b2

	return s.b
}

func (s *Series) Incident(a float64) {
	s.a = a

	// d = 2*R*i, shared loop current scaled by the total port resistance.
	d := a - s.b1 - s.b2
	s.p1.Incident(s.b1 + s.gamma*d)
	s.p2.Incident(s.b2 + (1-s.gamma)*d)
}

func (s *Series) Reset() {
	s.waves = waves{}
	s.b1, s.b2 = 0, 0
	s.p1.Reset()
	s.p2.Reset()
}

// Parallel connects two ports in parallel. Its port conductance is G1 + G2.
type Parallel struct {
	waves
	p1, p2 Port
	r      float64
	gamma  float64
	b1, b2 float64
}

// NewParallel returns a parallel adaptor over p1 and p2.
func NewParallel(p1, p2 Port) *Parallel {
	p := &Parallel{p1: p1, p2: p2}
	p.Refresh()

	return p
}

// Refresh recomputes the adaptor from its children.
func (p *Parallel) Refresh() {
	Refresh(p.p1)
	Refresh(p.p2)

	g1 := 1 / p.p1.PortResistance()
	g2 := 1 / p.p2.PortResistance()
	p.r = 1 / (g1 + g2)
	p.gamma = g1 / (g1 + g2)
}

func (p *Parallel) PortResistance() float64 { return p.r }

func (p *Parallel) Reflect() float64 {
	p.b1 = p.p1.Reflect()
	p.b2 = p.p2.Reflect()
	p.b = p.gamma*p.b1 + (1-p.gamma)*p.b2

	return p.b
}

func (p *Parallel) Incident(a float64) {
	p.a = a

	// a + b is twice the shared node voltage.
	v2 := a + p.b
	p.p1.Incident(v2 - p.b1)
	p.p2.Incident(v2 - p.b2)
}

func (p *Parallel) Reset() {
	p.waves = waves{}
	p.b1, p.b2 = 0, 0
	p.p1.Reset()
	p.p2.Reset()
}

// IdealTransformer couples a secondary subtree to its primary port.
//
// The ratio is Ns/Np: a secondary voltage of ratio*v appears for a primary
// voltage v. A negative ratio models an antiphase winding.
type IdealTransformer struct {
	waves
	child Port
	ratio float64
	r     float64
}

// NewIdealTransformer returns a transformer with the given Ns/Np ratio
// driving child on its secondary. ratio must be non-zero and finite.
func NewIdealTransformer(ratio float64, child Port) *IdealTransformer {
	t := &IdealTransformer{child: child, ratio: ratio}
	t.Refresh()

	return t
}

// Ratio returns the secondary to primary turns ratio.
func (t *IdealTransformer) Ratio() float64 { return t.ratio }

// Refresh recomputes the reflected resistance from the secondary subtree.
func (t *IdealTransformer) Refresh() {
	Refresh(t.child)
	t.r = t.child.PortResistance() / (t.ratio * t.ratio)
}

func (t *IdealTransformer) PortResistance() float64 { return t.r }

func (t *IdealTransformer) Reflect() float64 {
	t.b = t.child.Reflect() / t.ratio
	return t.b
}

func (t *IdealTransformer) Incident(a float64) {
	t.a = a
	t.child.Incident(t.ratio * a)
}

func (t *IdealTransformer) Reset() {
	t.waves = waves{}
	t.child.Reset()
}
