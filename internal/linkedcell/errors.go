package linkedcell

import "errors"

var (
	// ErrInvalidCutoff indicates a non-positive or non-finite cutoff radius.
	ErrInvalidCutoff = errors.New("linkedcell: cutoff radius must be positive and finite")

	// ErrInvalidDomain indicates a domain with a non-positive extent.
	ErrInvalidDomain = errors.New("linkedcell: domain extent must be positive")

	// ErrInvalidBoundary indicates an inconsistent boundary configuration.
	ErrInvalidBoundary = errors.New("linkedcell: invalid boundary configuration")
)
