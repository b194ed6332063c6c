// Package dataset defines adapter-specific errors
package dataset

import "errors"

var (
	ErrUnknownLayout   = errors.New("unknown dataset layout")
	ErrMalformedRecord = errors.New("malformed point record")
)
