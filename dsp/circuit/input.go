package circuit

import "github.com/cwbudde/wavechild670/dsp/wdf"

// InputCircuit models the program source, the input transformer and the
// grid termination. Its output is the voltage across the grid resistor.
type InputCircuit struct {
	tree wdf.Port
	root *wdf.VoltageSourceRoot
	gate *wdf.Resistor
}

// NewInputCircuit builds the input network.
func NewInputCircuit(sampleRate float64, c InputComponents) (*InputCircuit, error) {
	err := validateSampleRate(sampleRate)
	if err != nil {
		return nil, err
	}

	err = c.validate()
	if err != nil {
		return nil, err
	}

	gate := wdf.NewResistor(c.GateResistance)
	load := wdf.NewParallel(wdf.NewResistor(c.TerminationResistance), gate)
	tree := wdf.NewSeries(
		wdf.NewResistor(c.SourceResistance),
		newTransformerNetwork(sampleRate, c.Transformer, load),
	)

	return &InputCircuit{
		tree: tree,
		root: wdf.NewVoltageSourceRoot(tree),
		gate: gate,
	}, nil
}

// Advance drives the circuit with the program voltage for one sample and
// returns the grid drive voltage.
func (c *InputCircuit) Advance(v float64) float64 {
	c.root.Advance(v)
	return wdf.Voltage(c.gate)
}

// Reset clears all reactive state.
func (c *InputCircuit) Reset() {
	c.tree.Reset()
}
