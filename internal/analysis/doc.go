// Package analysis post-processes recorded energy series.
//
//   - [PowerSpectrum]: one-sided power spectrum of a uniformly sampled series
//   - [Analyze]: summary statistics and dominant oscillation of a run
//
// Energy in a well-resolved NVE run oscillates around a constant value.
// A large drift or a broad low-frequency spectrum usually means the time
// step is too large for the stiffest pair interaction.
package analysis
