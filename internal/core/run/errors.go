// Package run defines domain-specific errors
package run

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	// Record validation errors
	ErrInvalidRunID     = errors.New("invalid run ID")
	ErrInvalidDatasetID = errors.New("invalid dataset ID")
	ErrNegativeCount    = errors.New("summary counts cannot be negative")
	ErrRunNotFound      = errors.New("run record not found")

	// Filter validation errors
	ErrInvalidLimit     = errors.New("limit cannot be negative")
	ErrInvalidOffset    = errors.New("offset cannot be negative")
	ErrInvalidTimeRange = errors.New("invalid time range: since is after before")
)
