package linkedcell

import (
	"math"

	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r3"
)

type CellType int

const (
	Inner CellType = iota
	Boundary
	Halo
)

func (t CellType) String() string {
	switch t {
	case Inner:
		return "inner"
	case Boundary:
		return "boundary"
	default:
		return "halo"
	}
}

// Idx returns the flat index of the cell at integer coordinates (x, y, z).
func (c *Container) Idx(x, y, z int) int {
	return x + y*c.numCells[0] + z*c.area
}

// CellCoords returns the integer coordinates of cell idx.
func (c *Container) CellCoords(idx int) (x, y, z int) {
	x = idx % c.numCells[0]
	y = (idx % c.area) / c.numCells[0]
	z = idx / c.area
	return x, y, z
}

func (c *Container) inGrid(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 &&
		x < c.numCells[0] && y < c.numCells[1] && z < c.numCells[2]
}

// CellIndex maps a position to its cell. Positions outside the grid are
// clamped into the halo ring; a position on a cell face belongs to the
// higher cell.
func (c *Container) CellIndex(x r3.Vec) int {
	var coords [3]int
	for axis := 0; axis < 3; axis++ {
		rel := particle.Component(x, axis) - particle.Component(c.origin, axis)
		f := math.Floor(rel/c.cellSize[axis]) + 1
		hi := float64(c.numCells[axis] - 1)
		switch {
		case !(f >= 0):
			coords[axis] = 0
		case f > hi:
			coords[axis] = c.numCells[axis] - 1
		default:
			coords[axis] = int(f)
		}
	}
	return c.Idx(coords[0], coords[1], coords[2])
}

// CellType classifies cell idx by its coordinates: the outer ring is halo,
// the ring inside it is boundary, everything else is inner.
func (c *Container) CellType(idx int) CellType {
	x, y, z := c.CellCoords(idx)
	coords := [3]int{x, y, z}
	t := Inner
	for axis, v := range coords {
		last := c.numCells[axis] - 1
		if v == 0 || v == last {
			return Halo
		}
		if v == 1 || v == last-1 {
			t = Boundary
		}
	}
	return t
}
