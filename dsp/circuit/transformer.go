package circuit

import "github.com/cwbudde/wavechild670/dsp/wdf"

// newTransformerNetwork returns the primary-side port of a transformer
// whose secondary drives load:
//
//	(Rp + Lp) + [(Lm || Rc) || 1:n -> (Rs + Ls) + (Cw || load)]
func newTransformerNetwork(sampleRate float64, c TransformerComponents, load wdf.Port) wdf.Port {
	secondary := wdf.NewSeries(
		wdf.NewSeries(wdf.NewResistor(c.SecondaryResistance), wdf.NewInductor(c.SecondaryLeakage, sampleRate)),
		wdf.NewParallel(wdf.NewCapacitor(c.WindingCapacitance, sampleRate), load),
	)

	magnetizing := wdf.NewParallel(
		wdf.NewParallel(wdf.NewInductor(c.Magnetizing, sampleRate), wdf.NewResistor(c.CoreLoss)),
		wdf.NewIdealTransformer(1/c.TurnsRatio, secondary),
	)

	return wdf.NewSeries(
		wdf.NewSeries(wdf.NewResistor(c.PrimaryResistance), wdf.NewInductor(c.PrimaryLeakage, sampleRate)),
		magnetizing,
	)
}
