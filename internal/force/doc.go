// Package force computes pairwise particle forces.
//
// A [Law] gives the force between two particles for a separation vector.
// [Gravity] has infinite range; [LennardJones] is truncated at a cutoff
// radius and also drives the reflective wall force ([Walls]).
//
// The [Engine] resets all forces and accumulates every pair contribution
// with Newton's third law. It picks the traversal from the container type:
// a linked-cell container whose cutoff covers the law's range is traversed
// cell by cell in O(n); anything else falls back to all pairs in O(n²).
//
// # Strategies
//
// Pair contributions are accumulated by one of three strategies:
//
//	Serial    single goroutine, forces written in place
//	Buffered  per-worker force buffers reduced after the join
//	Atomic    shared atomic accumulators, committed after the join
//
// Parallel strategies split the outer particle index (guided chunks) or the
// center-cell index (static chunks) across workers. The first error stops
// the remaining workers and is returned.
package force
