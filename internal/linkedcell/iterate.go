package linkedcell

import (
	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r3"
)

// PairFunc receives each interacting pair once. shift is the displacement
// to add to q.X to obtain its minimum image relative to p; it is zero
// unless the pair straddles a periodic face.
type PairFunc func(p, q *particle.Particle, shift r3.Vec) error

// IndexPairFunc is PairFunc over particle indices.
type IndexPairFunc func(i, j int, shift r3.Vec) error

// forwardStencil is half of the 26-neighborhood: with intra-cell pairs it
// covers every neighboring cell pair exactly once.
var forwardStencil = [13][3]int{
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{-1, 1, 0},
	{-1, -1, 1},
	{0, -1, 1},
	{1, -1, 1},
	{-1, 0, 1},
	{0, 0, 1},
	{1, 0, 1},
	{-1, 1, 1},
	{0, 1, 1},
	{1, 1, 1},
}

// IteratePairs calls fn for every pair of particles in the same or adjacent
// cells. Halo cells are never used as the center cell, so a halo particle
// only interacts as a forward-stencil partner of a non-halo cell. Iteration
// stops at the first error, which is returned.
func (c *Container) IteratePairs(fn PairFunc) error {
	return c.IterateCellPairs(0, len(c.cells), func(i, j int, shift r3.Vec) error {
		return fn(&c.particles[i], &c.particles[j], shift)
	})
}

// IterateCellPairs visits the pairs owned by center cells in [start, end).
// Disjoint ranges visit disjoint pair sets.
func (c *Container) IterateCellPairs(start, end int, fn IndexPairFunc) error {
	if start < 0 {
		start = 0
	}
	if end > len(c.cells) {
		end = len(c.cells)
	}

	for idx := start; idx < end; idx++ {
		if c.CellType(idx) == Halo {
			continue
		}
		cell := c.cells[idx]
		for a := 0; a < len(cell); a++ {
			for b := a + 1; b < len(cell); b++ {
				if err := fn(cell[a], cell[b], r3.Vec{}); err != nil {
					return err
				}
			}
		}

		x, y, z := c.CellCoords(idx)
		for _, off := range forwardStencil {
			nIdx, shift, ok := c.neighbor(x+off[0], y+off[1], z+off[2])
			if !ok {
				continue
			}
			other := c.cells[nIdx]
			if len(other) == 0 {
				continue
			}
			for _, i := range cell {
				for _, j := range other {
					if err := fn(i, j, shift); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// neighbor resolves neighbor coordinates to a cell index. On periodic axes
// a coordinate in the halo ring is replaced by the inner cell on the
// opposite side and the returned shift maps positions in that cell back
// next to the center cell.
func (c *Container) neighbor(x, y, z int) (int, r3.Vec, bool) {
	coords := [3]int{x, y, z}
	var shift r3.Vec
	for axis := 0; axis < 3; axis++ {
		n := c.numCells[axis]
		v := coords[axis]
		if v < 0 || v >= n {
			return 0, shift, false
		}
		if !c.boundaries.Periodic(axis) {
			continue
		}
		size := particle.Component(c.extent, axis)
		switch v {
		case 0:
			coords[axis] = n - 2
			shift = particle.WithComponent(shift, axis, -size)
		case n - 1:
			coords[axis] = 1
			shift = particle.WithComponent(shift, axis, size)
		}
	}
	return c.Idx(coords[0], coords[1], coords[2]), shift, true
}

// NeighborCellIndices returns the in-grid cells of the 26-neighborhood of
// cell idx.
func (c *Container) NeighborCellIndices(idx int) []int {
	x, y, z := c.CellCoords(idx)
	out := make([]int, 0, 26)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				nx, ny, nz := x+dx, y+dy, z+dz
				if c.inGrid(nx, ny, nz) {
					out = append(out, c.Idx(nx, ny, nz))
				}
			}
		}
	}
	return out
}

// IterateCellNeighbors calls fn for every particle of cell idx paired with
// every particle of each of its neighbor cells. Each unordered pair across
// two cells is seen from both sides when both cells are visited.
func (c *Container) IterateCellNeighbors(idx int, fn PairFunc) error {
	for _, nIdx := range c.NeighborCellIndices(idx) {
		for _, i := range c.cells[idx] {
			for _, j := range c.cells[nIdx] {
				if err := fn(&c.particles[i], &c.particles[j], r3.Vec{}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
