package force

import (
	"github.com/san-kum/molsim/internal/particle"
	"go.uber.org/atomic"
	"gonum.org/v1/gonum/spatial/r3"
)

// accumulator receives pair contributions keyed by particle index.
type accumulator interface {
	add(i int, f r3.Vec)
	sub(i int, f r3.Vec)
}

// direct writes straight into the particle force fields. Only safe from a
// single goroutine.
type direct []particle.Particle

func (d direct) add(i int, f r3.Vec) { d[i].F = r3.Add(d[i].F, f) }
func (d direct) sub(i int, f r3.Vec) { d[i].F = r3.Sub(d[i].F, f) }

// buffer is one worker's private force array.
type buffer []r3.Vec

func (b buffer) add(i int, f r3.Vec) { b[i] = r3.Add(b[i], f) }
func (b buffer) sub(i int, f r3.Vec) { b[i] = r3.Sub(b[i], f) }

// atomics holds three shared components per particle.
type atomics []atomic.Float64

func (a atomics) add(i int, f r3.Vec) {
	a[3*i].Add(f.X)
	a[3*i+1].Add(f.Y)
	a[3*i+2].Add(f.Z)
}

func (a atomics) sub(i int, f r3.Vec) {
	a[3*i].Sub(f.X)
	a[3*i+1].Sub(f.Y)
	a[3*i+2].Sub(f.Z)
}

func (a atomics) load(i int) r3.Vec {
	return r3.Vec{X: a[3*i].Load(), Y: a[3*i+1].Load(), Z: a[3*i+2].Load()}
}

func (a atomics) reset() {
	for i := range a {
		a[i].Store(0)
	}
}
