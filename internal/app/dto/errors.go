package dto

import "errors"

// Run errors
var (
	ErrMissingDatasetID = errors.New("dataset ID is required")
	ErrUnknownIndexKind = errors.New("unknown neighborhood index kind")
	ErrRunFailed        = errors.New("clustering run failed")
	ErrInvalidInput     = errors.New("invalid input provided")
)
