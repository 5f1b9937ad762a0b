package circuit

import (
	"math"

	"github.com/cwbudde/wavechild670/dsp/core"
	"github.com/cwbudde/wavechild670/dsp/tube"
	"github.com/cwbudde/wavechild670/dsp/wdf"
)

const (
	maxNewtonIterations = 60
	newtonAbsTolerance  = 1e-12
	newtonRelTolerance  = 1e-9
)

// TubeStage is one triode stage. The triode is the nonlinear root joining a
// plate subtree (supply, output transformer, load) and a cathode subtree
// (bias source, bypass capacitor and the shared cathode link).
type TubeStage struct {
	model    tube.Model
	sections float64

	plate   wdf.Port
	cathode wdf.Port
	load    *wdf.Resistor

	ia         float64
	vgk        float64
	vak        float64
	iterations int
}

// NewTubeStage builds a stage. cathodeLink is this stage's side of the
// delay shared with the opposite stage; nil grounds the capacitor through
// a private link. model nil selects tube.DefaultRemoteCutoff.
func NewTubeStage(sampleRate float64, c StageComponents, model tube.Model, cathodeLink *wdf.UnitDelayPort) (*TubeStage, error) {
	err := validateSampleRate(sampleRate)
	if err != nil {
		return nil, err
	}

	err = c.validate()
	if err != nil {
		return nil, err
	}

	if model == nil {
		model = tube.DefaultRemoteCutoff()
	}

	if cathodeLink == nil {
		cathodeLink = wdf.NewBidirectionalUnitDelay(c.CathodeLinkResistance).Port(0)
	}

	load := wdf.NewResistor(c.LoadResistance)
	secondaryLoad := wdf.NewParallel(load, wdf.NewResistor(c.SidechainResistance))
	plate := wdf.NewSeries(
		wdf.NewResistiveVoltageSource(c.PlateSupply, c.PlateResistance),
		newTransformerNetwork(sampleRate, c.Transformer, secondaryLoad),
	)

	cathode := wdf.NewParallel(
		wdf.NewResistiveVoltageSource(c.CathodeBias, c.CathodeResistance),
		wdf.NewSeries(wdf.NewCapacitor(c.CathodeCapacitance, sampleRate), cathodeLink),
	)

	return &TubeStage{
		model:    model,
		sections: float64(c.Sections),
		plate:    plate,
		cathode:  cathode,
		load:     load,
	}, nil
}

// Advance solves the stage for grid voltage vg (relative to ground) and
// returns the voltage across the output load.
func (s *TubeStage) Advance(vg float64) float64 {
	bP := s.plate.Reflect()
	bK := s.cathode.Reflect()
	rP := s.plate.PortResistance()
	rK := s.cathode.PortResistance()

	ia := s.solve(vg, bP, bK, rP, rK)

	s.plate.Incident(bP - 2*rP*ia)
	s.cathode.Incident(bK + 2*rK*ia)

	s.vak = bP - bK - (rP+rK)*ia
	s.vgk = vg - bK - rK*ia

	return wdf.Voltage(s.load)
}

// solve finds the plate current ia satisfying
//
//	ia = sections * I(vg - bK - rK*ia, bP - bK - (rP+rK)*ia)
//
// The residual is strictly increasing in ia, so the root is bracketed by
// zero and the current that would pull the plate down to the cathode.
func (s *TubeStage) solve(vg, bP, bK, rP, rK float64) float64 {
	lo := 0.0
	hi := math.Max(0, (bP-bK)/(rP+rK))
	ia := core.Clamp(s.ia, lo, hi)

	s.iterations = maxNewtonIterations

	for it := range maxNewtonIterations {
		i, dg, da := s.model.Current(vg-bK-rK*ia, bP-bK-(rP+rK)*ia)

		f := ia - s.sections*i
		if f > 0 {
			hi = ia
		} else {
			lo = ia
		}

		df := 1 + s.sections*(rK*dg+(rP+rK)*da)
		step := f / df
		next := ia - step

		if math.Abs(step) <= newtonAbsTolerance+newtonRelTolerance*math.Abs(ia) {
			ia = next
			s.iterations = it + 1

			break
		}

		if next < lo || next > hi {
			next = 0.5 * (lo + hi)
		}

		ia = next
	}

	s.ia = ia

	return ia
}

// PlateCurrent returns the total plate current of the last sample.
func (s *TubeStage) PlateCurrent() float64 { return s.ia }

// PlateVoltage returns the plate-cathode voltage of the last sample.
func (s *TubeStage) PlateVoltage() float64 { return s.vak }

// GridVoltage returns the grid-cathode voltage of the last sample.
func (s *TubeStage) GridVoltage() float64 { return s.vgk }

// Iterations returns the Newton iterations used for the last sample.
func (s *TubeStage) Iterations() int { return s.iterations }

// Reset clears reactive state and the solver warm start.
func (s *TubeStage) Reset() {
	s.plate.Reset()
	s.cathode.Reset()
	s.ia, s.vgk, s.vak = 0, 0, 0
	s.iterations = 0
}
