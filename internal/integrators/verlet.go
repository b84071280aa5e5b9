package integrators

import (
	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r3"
)

// ForceCalculator recomputes F for every particle of a container.
type ForceCalculator interface {
	Calculate(c particle.Container) error
}

// BoundaryApplier is implemented by containers that enforce domain
// boundaries after positions move. It returns the number of particles
// removed.
type BoundaryApplier interface {
	ApplyBoundaryConditions() int
}

// StormerVerlet is the velocity form of the Störmer-Verlet scheme. Forces
// must be current before the first Step; Init computes them.
type StormerVerlet struct {
	removed int
}

func NewStormerVerlet() *StormerVerlet {
	return &StormerVerlet{}
}

func (v *StormerVerlet) Init(c particle.Container, f ForceCalculator) error {
	return f.Calculate(c)
}

// Step advances c by dt: positions, boundary pass, forces, then velocities
// from the average of the old and new force.
func (v *StormerVerlet) Step(c particle.Container, f ForceCalculator, dt float64) error {
	CalculateX(c, dt)

	if b, ok := c.(BoundaryApplier); ok {
		v.removed += b.ApplyBoundaryConditions()
	}

	c.Each(func(p *particle.Particle) { p.OldF = p.F })
	if err := f.Calculate(c); err != nil {
		return err
	}

	CalculateV(c, dt)
	return nil
}

// Removed is the number of particles the boundary pass has dropped so far.
func (v *StormerVerlet) Removed() int { return v.removed }

// CalculateX applies x += dt v + dt^2/(2m) F.
func CalculateX(c particle.Container, dt float64) {
	dt2 := dt * dt
	c.Each(func(p *particle.Particle) {
		p.X = r3.Add(p.X, r3.Add(r3.Scale(dt, p.V), r3.Scale(dt2/(2*p.M), p.F)))
	})
}

// CalculateV applies v += dt/(2m) (OldF + F).
func CalculateV(c particle.Container, dt float64) {
	c.Each(func(p *particle.Particle) {
		p.V = r3.Add(p.V, r3.Scale(dt/(2*p.M), r3.Add(p.OldF, p.F)))
	})
}
