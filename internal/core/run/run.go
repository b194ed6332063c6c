// Package run provides the core run-record domain entities and interfaces
// following Clean Architecture principles with zero external dependencies.
package run

import (
	"time"
)

// Record captures one completed clustering run
// PRINCIPLES:
// - KISS: Simple struct with clear fields
// - SRP: Only responsible for run bookkeeping, not the clustering itself
type Record struct {
	ID        string    `json:"id"`
	DatasetID string    `json:"dataset_id"`
	Eps       float64   `json:"eps"`
	MinPts    int       `json:"min_pts"`
	Points    int       `json:"points"`
	Clusters  int       `json:"clusters"`
	Noise     int       `json:"noise"`
	Metadata  Metadata  `json:"metadata"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Metadata contains additional information about a run
type Metadata struct {
	IndexKind string        `json:"index_kind,omitempty"`
	Parallel  bool          `json:"parallel,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	CreatedBy string        `json:"created_by,omitempty"`
	Tags      []string      `json:"tags,omitempty"`
}

// Validate ensures record integrity
// PRINCIPLES:
// - SRP: Single responsibility - validation only
// - KISS: Simple validation rules, easy to understand
func (r *Record) Validate() error {
	if r.ID == "" {
		return ErrInvalidRunID
	}
	if r.DatasetID == "" {
		return ErrInvalidDatasetID
	}
	if r.Points < 0 || r.Clusters < 0 || r.Noise < 0 {
		return ErrNegativeCount
	}
	return nil
}
