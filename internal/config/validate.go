package config

import (
	"fmt"

	"github.com/san-kum/molsim/internal/linkedcell"
)

func invalid(key, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, key, fmt.Sprintf(format, args...))
}

// Validate checks every field the simulation depends on and reports the
// first offending key.
func (c *Config) Validate() error {
	out := c.Output
	if out.WriteFrequency <= 0 {
		return invalid("output.write_frequency", "must be positive, got %d", out.WriteFrequency)
	}
	switch out.Format {
	case "xyz", "csv":
	default:
		return invalid("output.format", "unknown format %q", out.Format)
	}
	if out.BaseName == "" {
		return invalid("output.base_name", "must not be empty")
	}

	s := c.Simulation
	if !(s.DeltaT > 0) {
		return invalid("simulation.delta_t", "must be positive, got %g", s.DeltaT)
	}
	if s.TEnd < 0 {
		return invalid("simulation.t_end", "must not be negative, got %g", s.TEnd)
	}
	switch s.Force {
	case ForceLennardJones:
		if !(s.Sigma > 0) {
			return invalid("simulation.sigma", "must be positive, got %g", s.Sigma)
		}
		if s.Epsilon < 0 {
			return invalid("simulation.epsilon", "must not be negative, got %g", s.Epsilon)
		}
		if s.RepulsionDistance < 0 {
			return invalid("simulation.repulsion_distance", "must not be negative, got %g", s.RepulsionDistance)
		}
	case ForceGravity:
	default:
		return invalid("simulation.force", "unknown force %q", s.Force)
	}
	if _, err := s.Strategy(); err != nil {
		return invalid("simulation.parallel", "%v", err)
	}
	if s.Workers < 0 {
		return invalid("simulation.workers", "must not be negative, got %d", s.Workers)
	}
	if s.BrownianDims != 2 && s.BrownianDims != 3 {
		return invalid("simulation.brownian_dimensions", "must be 2 or 3, got %d", s.BrownianDims)
	}

	switch s.Container {
	case ContainerLinkedCell:
		if err := c.validateDomain(); err != nil {
			return err
		}
	case ContainerDirect:
		if s.Force == ForceLennardJones && s.CutoffRadius < 0 {
			return invalid("simulation.cutoff_radius", "must not be negative, got %g", s.CutoffRadius)
		}
	default:
		return invalid("simulation.container", "unknown container %q", s.Container)
	}

	for i, cu := range c.Cuboids {
		key := fmt.Sprintf("cuboids[%d]", i)
		for axis, n := range cu.Dimensions {
			if n < 1 {
				return invalid(key+".dimensions", "axis %d must be at least 1, got %d", axis, n)
			}
		}
		if err := validateLattice(key, cu.MeshWidth, cu.Mass, cu.MeanVelocity); err != nil {
			return err
		}
	}
	for i, d := range c.Discs {
		key := fmt.Sprintf("discs[%d]", i)
		if d.Radius < 0 {
			return invalid(key+".radius", "must not be negative, got %d", d.Radius)
		}
		if err := validateLattice(key, d.MeshWidth, d.Mass, d.MeanVelocity); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateDomain() error {
	if !(c.Simulation.CutoffRadius > 0) {
		return invalid("simulation.cutoff_radius", "must be positive, got %g", c.Simulation.CutoffRadius)
	}
	for axis, v := range c.Domain.Size {
		if !(v > 0) {
			return invalid("domain.size", "axis %d must be positive, got %g", axis, v)
		}
	}
	b, err := c.Domain.Boundaries()
	if err != nil {
		return invalid("domain.boundary", "%v", err)
	}
	for axis := 0; axis < 3; axis++ {
		if (b[2*axis] == linkedcell.Periodic) != (b[2*axis+1] == linkedcell.Periodic) {
			return invalid("domain.boundary", "axis %d is periodic on one face only", axis)
		}
		if b.Periodic(axis) && int(c.Domain.Size[axis]/c.Simulation.CutoffRadius) < 3 {
			return invalid("domain.boundary", "periodic axis %d needs size >= 3 cutoff radii", axis)
		}
	}
	if b.Has(linkedcell.Reflective) && c.Simulation.Force != ForceLennardJones {
		return invalid("domain.boundary", "reflective faces need the %s force", ForceLennardJones)
	}
	return nil
}

func validateLattice(key string, h, m, meanV float64) error {
	if !(h > 0) {
		return invalid(key+".mesh_width", "must be positive, got %g", h)
	}
	if !(m > 0) {
		return invalid(key+".mass", "must be positive, got %g", m)
	}
	if meanV < 0 {
		return invalid(key+".mean_velocity", "must not be negative, got %g", meanV)
	}
	return nil
}
