package linkedcell

import (
	"fmt"
	"strings"
)

type BoundaryType int

const (
	Outflow BoundaryType = iota
	Reflective
	Periodic
)

func (b BoundaryType) String() string {
	switch b {
	case Outflow:
		return "outflow"
	case Reflective:
		return "reflective"
	case Periodic:
		return "periodic"
	default:
		return fmt.Sprintf("BoundaryType(%d)", int(b))
	}
}

func ParseBoundaryType(s string) (BoundaryType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "outflow":
		return Outflow, nil
	case "reflective", "reflecting":
		return Reflective, nil
	case "periodic":
		return Periodic, nil
	default:
		return 0, fmt.Errorf("%w: unknown boundary type %q", ErrInvalidBoundary, s)
	}
}

// Face names one side of the domain. Even faces are the lower side of an
// axis, odd faces the upper side.
type Face int

const (
	Left Face = iota
	Right
	Bottom
	Top
	Back
	Front
)

func (f Face) Axis() int { return int(f) / 2 }

func (f Face) Upper() bool { return int(f)%2 == 1 }

func (f Face) String() string {
	return [...]string{"left", "right", "bottom", "top", "back", "front"}[f]
}

// Boundaries holds one type per face, ordered -x, +x, -y, +y, -z, +z.
type Boundaries [6]BoundaryType

func UniformBoundaries(b BoundaryType) Boundaries {
	var bs Boundaries
	for i := range bs {
		bs[i] = b
	}
	return bs
}

// ParseBoundaries accepts either six face names or a single name applied to
// every face.
func ParseBoundaries(names []string) (Boundaries, error) {
	var bs Boundaries
	switch len(names) {
	case 0:
		return UniformBoundaries(Outflow), nil
	case 1:
		b, err := ParseBoundaryType(names[0])
		if err != nil {
			return bs, err
		}
		return UniformBoundaries(b), nil
	case 6:
		for i, name := range names {
			b, err := ParseBoundaryType(name)
			if err != nil {
				return bs, fmt.Errorf("face %s: %w", Face(i), err)
			}
			bs[i] = b
		}
		return bs, nil
	default:
		return bs, fmt.Errorf("%w: expected 1 or 6 boundary types, got %d", ErrInvalidBoundary, len(names))
	}
}

func (bs Boundaries) Periodic(axis int) bool {
	return bs[2*axis] == Periodic
}

func (bs Boundaries) Has(b BoundaryType) bool {
	for _, x := range bs {
		if x == b {
			return true
		}
	}
	return false
}

func (bs Boundaries) Strings() []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.String()
	}
	return out
}

func (bs Boundaries) validate(inner [3]int) error {
	for axis := 0; axis < 3; axis++ {
		lo, hi := bs[2*axis], bs[2*axis+1]
		if (lo == Periodic) != (hi == Periodic) {
			return fmt.Errorf("%w: periodic face %s needs a periodic opposite face",
				ErrInvalidBoundary, Face(2*axis))
		}
		if lo == Periodic && inner[axis] < 3 {
			return fmt.Errorf("%w: periodic axis %d needs at least 3 cells, got %d",
				ErrInvalidBoundary, axis, inner[axis])
		}
	}
	return nil
}
