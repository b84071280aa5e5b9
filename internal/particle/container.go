package particle

import "gonum.org/v1/gonum/spatial/r3"

// Container owns particle storage. Pointers returned by At and passed to
// Each are valid until the next mutation.
type Container interface {
	Len() int
	At(i int) *Particle
	Particles() []Particle
	Add(x, v r3.Vec, m float64, typ int)
	AddParticle(p Particle)
	Remove(i int)
	Each(fn func(p *Particle))
}

// Direct is the flat particle list used for all-pairs traversal.
type Direct struct {
	particles []Particle
}

func NewDirect() *Direct {
	return &Direct{}
}

func NewDirectWithCapacity(n int) *Direct {
	return &Direct{particles: make([]Particle, 0, n)}
}

func (d *Direct) Len() int { return len(d.particles) }

func (d *Direct) At(i int) *Particle { return &d.particles[i] }

func (d *Direct) Particles() []Particle { return d.particles }

func (d *Direct) Add(x, v r3.Vec, m float64, typ int) {
	d.particles = append(d.particles, New(x, v, m, typ))
}

func (d *Direct) AddParticle(p Particle) {
	d.particles = append(d.particles, p)
}

// Remove deletes the particle at index i keeping the order of the rest.
// Out-of-range indices are ignored.
func (d *Direct) Remove(i int) {
	if i < 0 || i >= len(d.particles) {
		return
	}
	d.particles = append(d.particles[:i], d.particles[i+1:]...)
}

func (d *Direct) Each(fn func(p *Particle)) {
	for i := range d.particles {
		fn(&d.particles[i])
	}
}

// Snapshot returns a deep copy of the particles held by c.
func Snapshot(c Container) []Particle {
	src := c.Particles()
	out := make([]Particle, len(src))
	copy(out, src)
	return out
}

// ResetForces zeroes F on every particle of c.
func ResetForces(c Container) {
	c.Each(func(p *Particle) { p.F = r3.Vec{} })
}
