// Package storage persists simulation runs.
//
// A run lives in its own directory under the store root:
//
//	<root>/<run_id>/metadata.json   run parameters and summary metrics
//	<root>/<run_id>/energies.csv    one row per recorded sample
//	<root>/<run_id>/snapshots/      particle snapshots, one file per write
//
// Snapshots are written by SnapshotWriter, which plugs into the simulator
// as an observer. Files are named <base>_<iteration>.<ext> with the
// iteration zero-padded to four digits.
package storage
