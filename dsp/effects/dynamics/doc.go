// Package dynamics provides reusable non-I/O dynamics processors.
//
// Included processors:
//   - Wavechild670: Two-channel circuit-level emulation of a variable-mu tube
//     limiter with feedback or feedforward detection, stereo linking and
//     mid/side operation.
//   - SidechainAmplifier: AC-coupled, soft-limited full-wave rectifier that
//     turns program voltage into level-circuit charging current.
package dynamics
