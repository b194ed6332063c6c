package usecases

import (
	"context"

	"github.com/chisyliu/trackingAlg-dbscan/internal/app/dto"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/run"
)

// ClusterRunner defines the interface for executing clustering runs
// PRINCIPLES:
// - SRP: Single responsibility for run orchestration
// - OCP: Open for extension with different engine configurations
// - DIP: Depends on abstractions, not concretions
type ClusterRunner interface {
	// Run clusters the requested point set
	Run(ctx context.Context, req *dto.RunRequest) (*dto.RunResponse, error)

	// GetStatus returns the current status of an in-flight run
	GetStatus(ctx context.Context, runID string) (*dto.RunResponse, error)

	// ListRuns returns recorded runs matching the filter
	ListRuns(ctx context.Context, filter run.Filter) ([]*run.Record, error)
}

// RunStore is the persistence boundary for completed runs
type RunStore = run.Store
