package force

import (
	"fmt"
	"strings"
)

type Strategy int

const (
	Serial Strategy = iota
	Buffered
	Atomic
)

func (s Strategy) String() string {
	switch s {
	case Serial:
		return "serial"
	case Buffered:
		return "buffered"
	case Atomic:
		return "atomic"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "", "serial":
		return Serial, nil
	case "buffered", "buffer":
		return Buffered, nil
	case "atomic":
		return Atomic, nil
	default:
		return Serial, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

func Strategies() []Strategy {
	return []Strategy{Serial, Buffered, Atomic}
}
