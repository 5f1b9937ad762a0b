// Package circuit provides wave digital models of the analog sub-circuits of
// a variable-mu tube limiter.
//
// Included circuits:
//   - InputCircuit: source resistance, input transformer and grid
//     termination, producing the balanced grid drive voltage.
//   - TubeStage: one triode with its plate (output transformer) and cathode
//     (bias and bypass capacitor) networks, solved with safeguarded Newton
//     iterations against a tube.Model.
//   - VariableMuAmplifier: push/pull pair of TubeStages sharing one cathode
//     capacitor node through a wdf.BidirectionalUnitDelay.
//   - LevelTimeConstantCircuit: RC network holding the control voltage,
//     with six selectable time-constant presets.
//
// All circuits are single-threaded, allocate nothing per sample and must be
// advanced exactly once per sample.
package circuit
