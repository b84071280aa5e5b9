// Package tui renders a running simulation in the terminal.
//
// The view is a bubbletea program fed by an observer registered on the
// simulator. Each snapshot updates a braille projection of the particles
// onto the x-y plane, an energy plot and the run progress. Pressing q
// cancels the run.
package tui
