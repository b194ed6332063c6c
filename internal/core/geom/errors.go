// Package geom defines domain-specific errors
package geom

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	ErrNonFiniteCoordinate = errors.New("coordinate is not a finite number")
)
