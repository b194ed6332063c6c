package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chisyliu/trackingAlg-dbscan/internal/app/dto"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/cluster"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/geom"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/index"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/run"
	"github.com/chisyliu/trackingAlg-dbscan/internal/infrastructure/metrics"
	"github.com/chisyliu/trackingAlg-dbscan/pkg/validation"
)

// DefaultClusterRunner implements the ClusterRunner interface
// PRINCIPLES:
// - KISS: Simple, straightforward orchestration logic
// - SRP: Focuses only on run orchestration, not the scan itself
// - DRY: The engine owns all clustering semantics
type DefaultClusterRunner struct {
	store run.Store
	runs  map[string]*dto.RunContext
	mu    sync.RWMutex
}

// NewDefaultClusterRunner creates a runner with an optional run store.
// A nil store disables run recording.
func NewDefaultClusterRunner(store run.Store) *DefaultClusterRunner {
	return &DefaultClusterRunner{
		store: store,
		runs:  make(map[string]*dto.RunContext),
	}
}

// Run clusters the requested point set
func (r *DefaultClusterRunner) Run(ctx context.Context, req *dto.RunRequest) (*dto.RunResponse, error) {
	// Tag-level checks first, then req.Validate fills config defaults.
	// Both fail before any scan begins; no partial result escapes.
	if err := validation.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	runID := uuid.NewString()
	runCtx := &dto.RunContext{
		RunID:     runID,
		DatasetID: req.DatasetID,
		Params:    cluster.Params{Eps: req.Eps, MinPts: req.MinPts},
		Config:    req.Config,
		StartTime: time.Now(),
	}

	r.mu.Lock()
	r.runs[runID] = runCtx
	r.mu.Unlock()

	response := &dto.RunResponse{
		RunID:     runID,
		DatasetID: req.DatasetID,
		Status:    dto.RunStatusRunning,
		StartTime: runCtx.StartTime,
	}

	engine := cluster.NewEngine(cluster.WithIndexBuilder(indexBuilder(req.Config)))
	result, err := engine.Run(req.Points, runCtx.Params)

	response.EndTime = time.Now()
	response.Duration = response.EndTime.Sub(response.StartTime)

	r.mu.Lock()
	delete(r.runs, runID)
	r.mu.Unlock()

	if err != nil {
		response.Status = dto.RunStatusFailed
		response.Error = err.Error()
		return response, err
	}

	response.Status = dto.RunStatusCompleted
	response.Clusters = result.Clusters
	response.Noise = result.Noise
	response.PointCount = result.TotalPoints()
	response.ClusterCount = result.ClusterCount()
	response.NoiseCount = result.NoiseCount()

	metrics.IncRuns()
	metrics.IncPoints(int64(response.PointCount))
	metrics.IncClusters(int64(response.ClusterCount))
	metrics.IncNoise(int64(response.NoiseCount))

	if req.Config.RecordRun && r.store != nil {
		// Recording is best effort; the clustering result already stands.
		_ = r.store.Save(ctx, r.buildRecord(response, runCtx))
	}

	return response, nil
}

// GetStatus returns the current status of an in-flight run
func (r *DefaultClusterRunner) GetStatus(_ context.Context, runID string) (*dto.RunResponse, error) {
	r.mu.RLock()
	runCtx, exists := r.runs[runID]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	return &dto.RunResponse{
		RunID:     runID,
		DatasetID: runCtx.DatasetID,
		Status:    dto.RunStatusRunning,
		StartTime: runCtx.StartTime,
	}, nil
}

// ListRuns returns recorded runs matching the filter
func (r *DefaultClusterRunner) ListRuns(ctx context.Context, filter run.Filter) ([]*run.Record, error) {
	if r.store == nil {
		return nil, run.ErrRunNotFound
	}
	return r.store.List(ctx, filter)
}

// buildRecord assembles the persisted summary of a completed run
func (r *DefaultClusterRunner) buildRecord(resp *dto.RunResponse, runCtx *dto.RunContext) *run.Record {
	return &run.Record{
		ID:        resp.RunID,
		DatasetID: resp.DatasetID,
		Eps:       runCtx.Params.Eps,
		MinPts:    runCtx.Params.MinPts,
		Points:    resp.PointCount,
		Clusters:  resp.ClusterCount,
		Noise:     resp.NoiseCount,
		Metadata: run.Metadata{
			IndexKind: string(runCtx.Config.Index),
			Parallel:  runCtx.Config.Parallel,
			Duration:  resp.Duration,
			CreatedBy: "cluster_runner",
		},
		Timestamp: resp.EndTime,
		Version:   "1",
	}
}

// indexBuilder maps request configuration to a neighborhood index
func indexBuilder(cfg dto.RunConfig) cluster.IndexBuilder {
	return func(points []geom.Point, eps float64) cluster.NeighborhoodIndex {
		var src index.Source
		switch cfg.Index {
		case dto.IndexGrid:
			src = index.NewGrid(points, eps)
		default:
			src = index.NewBruteForce(points, eps)
		}
		if cfg.Parallel {
			return index.Precompute(src, cfg.Workers)
		}
		return src
	}
}
