package linkedcell

import (
	"math"

	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r3"
)

// ApplyBoundaryConditions wraps positions across periodic faces, removes
// particles that left through outflow faces and rebuilds the cells.
// A particle exactly on an upper face already maps to the halo and counts as
// gone. Reflective faces are left to the force engine. It returns the number
// of removed particles.
func (c *Container) ApplyBoundaryConditions() int {
	kept := c.particles[:0]
	removed := 0
	for _, p := range c.particles {
		p.X = c.wrap(p.X)
		if c.escaped(p.X) {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	clear(c.particles[len(kept):])
	c.particles = kept
	c.UpdateCells()
	return removed
}

func (c *Container) wrap(x r3.Vec) r3.Vec {
	for axis := 0; axis < 3; axis++ {
		if !c.boundaries.Periodic(axis) {
			continue
		}
		lo := particle.Component(c.origin, axis)
		size := particle.Component(c.extent, axis)
		v := particle.Component(x, axis)
		if v >= lo && v < lo+size {
			continue
		}
		x = particle.WithComponent(x, axis, lo+pMod(v-lo, size))
	}
	return x
}

func (c *Container) escaped(x r3.Vec) bool {
	for axis := 0; axis < 3; axis++ {
		lo := particle.Component(c.origin, axis)
		hi := lo + particle.Component(c.extent, axis)
		v := particle.Component(x, axis)
		if v < lo && c.boundaries[2*axis] == Outflow {
			return true
		}
		if v >= hi && c.boundaries[2*axis+1] == Outflow {
			return true
		}
	}
	return false
}

// pMod is the positive floating modulo, always in [0, y).
func pMod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m < 0 {
		m += y
	}
	if m >= y {
		m = 0
	}
	return m
}
