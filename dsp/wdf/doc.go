// Package wdf provides wave digital filter building blocks for
// sample-accurate emulation of lumped analog circuits.
//
// Every element is a one-port described by its port resistance R and the
// wave pair
//
//	a = v + R*i  (incident, travelling into the element)
//	b = v - R*i  (reflected, travelling out of the element)
//
// with i flowing into the element. Reactive elements are discretised with
// the bilinear transform.
//
// Included blocks:
//   - Resistor, Capacitor, Inductor, ResistiveVoltageSource: leaf elements.
//   - Series, Parallel: two-port-to-one-port adaptors.
//   - IdealTransformer: scales a subtree by a turns ratio.
//   - UnitDelayPort, BidirectionalUnitDelay: couples two trees through a
//     one-sample delayed wave exchange.
//   - VoltageSourceRoot, CurrentSourceRoot: ideal sources at the tree root.
//
// A tree is evaluated once per sample: the root pulls reflected waves up the
// tree with Reflect, then pushes the incident wave down with Incident.
package wdf
