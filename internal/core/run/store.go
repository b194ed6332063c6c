// Package run provides run-record persistence interfaces
package run

import (
	"context"
	"time"
)

// Store interface for run-record persistence (DIP - Dependency Inversion)
// PRINCIPLES:
// - ISP: Interface segregation with ≤5 methods
// - DIP: Core domain depends on interface, not implementations
// - SRP: Single responsibility - run-record persistence
type Store interface {
	// Save persists a run record
	Save(ctx context.Context, record *Record) error

	// Load retrieves a run record by ID
	Load(ctx context.Context, id string) (*Record, error)

	// List returns run records matching the filter
	List(ctx context.Context, filter Filter) ([]*Record, error)

	// Delete removes a run record by ID
	Delete(ctx context.Context, id string) error
}

// Filter for run queries (ISP - segregated interface)
type Filter struct {
	DatasetID string     `json:"dataset_id,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
	Since     *time.Time `json:"since,omitempty"`
	Before    *time.Time `json:"before,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
}

// Validate ensures filter parameters are valid
func (f *Filter) Validate() error {
	if f.Limit < 0 {
		return ErrInvalidLimit
	}
	if f.Offset < 0 {
		return ErrInvalidOffset
	}
	if f.Since != nil && f.Before != nil && f.Since.After(*f.Before) {
		return ErrInvalidTimeRange
	}
	return nil
}
