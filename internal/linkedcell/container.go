package linkedcell

import (
	"fmt"
	"math"

	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r3"
)

// Container stores particles in a flat slice and buckets their indices into
// grid cells. Cell buckets are rebuilt by UpdateCells and are stale after
// any position change until then.
type Container struct {
	particles []particle.Particle
	cells     [][]int

	origin     r3.Vec
	extent     r3.Vec
	cutoff     float64
	boundaries Boundaries

	cellSize [3]float64
	numCells [3]int
	area     int
}

var _ particle.Container = (*Container)(nil)

// New builds an empty container over the box [origin, origin+extent).
func New(origin, extent r3.Vec, cutoff float64, boundaries Boundaries) (*Container, error) {
	if !(cutoff > 0) || math.IsInf(cutoff, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidCutoff, cutoff)
	}

	c := &Container{
		origin:     origin,
		extent:     extent,
		cutoff:     cutoff,
		boundaries: boundaries,
	}

	var inner [3]int
	for axis := 0; axis < 3; axis++ {
		size := particle.Component(extent, axis)
		if !(size > 0) || math.IsInf(size, 0) {
			return nil, fmt.Errorf("%w: axis %d has extent %v", ErrInvalidDomain, axis, size)
		}
		n := int(math.Floor(size / cutoff))
		if n < 1 {
			n = 1
		}
		inner[axis] = n
		c.cellSize[axis] = size / float64(n)
		c.numCells[axis] = n + 2
	}

	if err := boundaries.validate(inner); err != nil {
		return nil, err
	}

	c.area = c.numCells[0] * c.numCells[1]
	c.cells = make([][]int, c.area*c.numCells[2])
	return c, nil
}

func (c *Container) Len() int { return len(c.particles) }

func (c *Container) At(i int) *particle.Particle { return &c.particles[i] }

func (c *Container) Particles() []particle.Particle { return c.particles }

func (c *Container) Add(x, v r3.Vec, m float64, typ int) {
	c.AddParticle(particle.New(x, v, m, typ))
}

func (c *Container) AddParticle(p particle.Particle) {
	c.particles = append(c.particles, p)
	idx := c.CellIndex(p.X)
	c.cells[idx] = append(c.cells[idx], len(c.particles)-1)
}

// Remove deletes the particle at index i keeping the order of the rest and
// rebuilds the cells.
func (c *Container) Remove(i int) {
	if i < 0 || i >= len(c.particles) {
		return
	}
	c.particles = append(c.particles[:i], c.particles[i+1:]...)
	c.UpdateCells()
}

func (c *Container) Each(fn func(p *particle.Particle)) {
	for i := range c.particles {
		fn(&c.particles[i])
	}
}

// UpdateCells clears every bucket and reassigns every particle from its
// current position.
func (c *Container) UpdateCells() {
	for i := range c.cells {
		c.cells[i] = c.cells[i][:0]
	}
	for i := range c.particles {
		idx := c.CellIndex(c.particles[i].X)
		c.cells[idx] = append(c.cells[idx], i)
	}
}

func (c *Container) Origin() r3.Vec         { return c.origin }
func (c *Container) Extent() r3.Vec         { return c.extent }
func (c *Container) Cutoff() float64        { return c.cutoff }
func (c *Container) CellSize() [3]float64   { return c.cellSize }
func (c *Container) NumCells() [3]int       { return c.numCells }
func (c *Container) NumCellsTotal() int     { return len(c.cells) }
func (c *Container) Boundaries() Boundaries { return c.boundaries }

// Cell returns the particle indices bucketed in cell idx. The slice is
// owned by the container.
func (c *Container) Cell(idx int) []int { return c.cells[idx] }

// InsideDomain reports whether x lies in [origin, origin+extent) on every
// axis.
func (c *Container) InsideDomain(x r3.Vec) bool {
	for axis := 0; axis < 3; axis++ {
		lo := particle.Component(c.origin, axis)
		hi := lo + particle.Component(c.extent, axis)
		v := particle.Component(x, axis)
		if v < lo || v >= hi {
			return false
		}
	}
	return true
}
