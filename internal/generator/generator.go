// Package generator populates containers with regular particle lattices.
//
// Every generated particle receives the body velocity of its shape plus a
// Brownian component meanV · N(0,1) on the first Dims axes. The random
// stream comes from an explicit source so runs are reproducible per seed.
package generator

import (
	"github.com/san-kum/molsim/internal/particle"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

type Cuboid struct {
	Origin       r3.Vec
	Velocity     r3.Vec
	N            [3]int
	H            float64
	Mass         float64
	MeanVelocity float64
	Type         int
}

// Disc is a filled circle of lattice points in the plane z = Center.Z.
type Disc struct {
	Center       r3.Vec
	Velocity     r3.Vec
	Radius       int
	H            float64
	Mass         float64
	MeanVelocity float64
	Type         int
}

type Generator struct {
	dims   int
	normal distuv.Normal
}

// New returns a generator drawing from src. dims is the number of axes
// that receive Brownian motion, 2 or 3.
func New(src rand.Source, dims int) *Generator {
	if dims < 1 || dims > 3 {
		dims = 2
	}
	return &Generator{
		dims:   dims,
		normal: distuv.Normal{Mu: 0, Sigma: 1, Src: src},
	}
}

// NewSeeded is New with a fresh source for seed.
func NewSeeded(seed uint64, dims int) *Generator {
	return New(rand.NewSource(seed), dims)
}

// Brownian draws a velocity with meanV · N(0,1) on each of the first dims
// axes.
func (g *Generator) Brownian(meanV float64) r3.Vec {
	var v r3.Vec
	for axis := 0; axis < g.dims; axis++ {
		v = particle.WithComponent(v, axis, meanV*g.normal.Rand())
	}
	return v
}

// Cuboid adds N[0]·N[1]·N[2] particles spaced H apart starting at Origin,
// x outermost and z innermost. It returns the number of particles added.
func (g *Generator) Cuboid(c particle.Container, cu Cuboid) int {
	added := 0
	for x := 0; x < cu.N[0]; x++ {
		for y := 0; y < cu.N[1]; y++ {
			for z := 0; z < cu.N[2]; z++ {
				pos := r3.Add(cu.Origin, r3.Scale(cu.H, r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}))
				vel := r3.Add(cu.Velocity, g.Brownian(cu.MeanVelocity))
				c.Add(pos, vel, cu.Mass, cu.Type)
				added++
			}
		}
	}
	return added
}

// Disc adds every lattice point within Radius·H of Center.
func (g *Generator) Disc(c particle.Container, d Disc) int {
	added := 0
	limit := d.Radius * d.Radius
	for i := -d.Radius; i <= d.Radius; i++ {
		for j := -d.Radius; j <= d.Radius; j++ {
			if i*i+j*j > limit {
				continue
			}
			pos := r3.Add(d.Center, r3.Vec{X: float64(i) * d.H, Y: float64(j) * d.H})
			vel := r3.Add(d.Velocity, g.Brownian(d.MeanVelocity))
			c.Add(pos, vel, d.Mass, d.Type)
			added++
		}
	}
	return added
}
