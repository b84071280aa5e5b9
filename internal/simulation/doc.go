// Package simulation drives a particle container through time.
//
// A [Simulator] owns the container, an [Integrator] and a force calculator.
// Run validates the setup, computes the initial forces and then steps until
// the configured end time. Every WriteFrequency iterations each registered
// [Observer] receives a [Snapshot], a deep copy of the particles taken
// after a complete step.
//
// Failures inside a step abort the run and are reported as a
// [SimulationError] carrying the step index and simulated time.
package simulation
