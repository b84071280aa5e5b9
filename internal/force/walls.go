package force

import (
	"github.com/san-kum/molsim/internal/linkedcell"
	"github.com/san-kum/molsim/internal/particle"
	"gonum.org/v1/gonum/spatial/r3"
)

// Walls pushes particles away from reflective faces with the Lennard-Jones
// force of a ghost mirrored across the face. Ghosts are never stored.
type Walls struct {
	LJ *LennardJones
}

// Apply adds the wall force to every particle inside the domain within the
// cutoff of a reflective face of c. Faces contribute independently.
func (w Walls) Apply(c *linkedcell.Container) {
	bs := c.Boundaries()
	if w.LJ == nil || !bs.Has(linkedcell.Reflective) {
		return
	}

	origin, extent := c.Origin(), c.Extent()
	reach := w.LJ.Cutoff()
	ps := c.Particles()
	for i := range ps {
		p := &ps[i]
		for face := linkedcell.Left; face <= linkedcell.Front; face++ {
			if bs[face] != linkedcell.Reflective {
				continue
			}
			axis := face.Axis()
			wall := particle.Component(origin, axis)
			if face.Upper() {
				wall += particle.Component(extent, axis)
			}
			x := particle.Component(p.X, axis)
			dist := x - wall
			if face.Upper() {
				dist = wall - x
			}
			if dist <= 0 || dist >= reach {
				continue
			}
			ghost := particle.WithComponent(p.X, axis, 2*wall-x)
			d := r3.Sub(ghost, p.X)
			r := r3.Norm(d)
			if r <= 0 || r >= w.LJ.RepulsionDistance {
				continue
			}
			p.F = r3.Add(p.F, w.LJ.force(d, r))
		}
	}
}
