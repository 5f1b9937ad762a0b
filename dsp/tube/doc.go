// Package tube provides static vacuum-tube device laws for circuit-level
// emulation.
//
// A Model maps grid-cathode and plate-cathode voltages to plate current and
// returns both partial derivatives, so a circuit solver can run Newton
// iterations against it. Models are stateless and may be shared between
// any number of stages.
//
// Included models:
//   - RemoteCutoff: single-section remote-cutoff triode with a soft
//     exponential tail, suitable for variable-mu gain reduction.
package tube
