// Package cluster defines domain-specific errors
package cluster

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	// Parameter validation errors
	ErrInvalidEps    = errors.New("eps must be a positive finite number")
	ErrInvalidMinPts = errors.New("minPts must be at least 1")

	// Input validation errors
	ErrInvalidPoint = errors.New("invalid point")
)
