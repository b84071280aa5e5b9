package force

import "errors"

var (
	// ErrZeroDistance indicates two particles at the same position.
	ErrZeroDistance = errors.New("force: zero distance between particles")

	// ErrUnknownStrategy indicates an unrecognized accumulation strategy name.
	ErrUnknownStrategy = errors.New("force: unknown strategy")
)
