// Package linkedcell implements the linked-cell particle container.
//
// The simulation domain is divided into a uniform grid of cells whose edge
// is at least the cutoff radius, surrounded by one ring of halo cells. Each
// step the cells are rebuilt from the particle positions in O(n), and pair
// iteration visits every pair of particles that can interact exactly once:
// intra-cell pairs plus a forward stencil of 13 neighbor offsets.
//
// # Boundaries
//
// Each of the six domain faces carries a [BoundaryType]:
//
//   - [Outflow]: particles that cross the face are removed.
//   - [Reflective]: the force engine repels particles with a mirrored ghost.
//   - [Periodic]: positions wrap to the opposite face and pair iteration
//     uses minimum-image displacements across it.
package linkedcell
