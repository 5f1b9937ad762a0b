package wdf

// VoltageSourceRoot drives a tree with an ideal voltage source.
type VoltageSourceRoot struct {
	tree Port
}

// NewVoltageSourceRoot returns an ideal voltage source connected to tree.
func NewVoltageSourceRoot(tree Port) *VoltageSourceRoot {
	return &VoltageSourceRoot{tree: tree}
}

// Advance evaluates the tree for one sample with source voltage e.
func (r *VoltageSourceRoot) Advance(e float64) {
	b := r.tree.Reflect()
	r.tree.Incident(2*e - b)
}

// CurrentSourceRoot drives a tree with an ideal current source. Positive
// current flows into the tree.
type CurrentSourceRoot struct {
	tree Port
}

// NewCurrentSourceRoot returns an ideal current source connected to tree.
func NewCurrentSourceRoot(tree Port) *CurrentSourceRoot {
	return &CurrentSourceRoot{tree: tree}
}

// Advance evaluates the tree for one sample with source current j and
// returns the voltage across the tree.
func (r *CurrentSourceRoot) Advance(j float64) float64 {
	b := r.tree.Reflect()
	rp := r.tree.PortResistance()
	r.tree.Incident(b + 2*rp*j)

	return b + rp*j
}
