package dbscan

import (
	"context"

	"github.com/chisyliu/trackingAlg-dbscan/internal/adapters/repository/memory"
	"github.com/chisyliu/trackingAlg-dbscan/internal/app/dto"
	"github.com/chisyliu/trackingAlg-dbscan/internal/app/usecases"
	corecluster "github.com/chisyliu/trackingAlg-dbscan/internal/core/cluster"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/geom"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/run"
)

// Re-export core types for convenience
type Point = geom.Point
type Cluster = corecluster.Cluster
type Result = corecluster.Result
type Params = corecluster.Params

// Runtime is a simple façade to run clustering without importing internal
// packages directly. The default runtime uses in-memory components and is
// suitable for local usage and tests.
type Runtime struct {
	runner usecases.ClusterRunner
	store  run.Store
}

// NewRuntime constructs a default runtime with an in-memory run store
func NewRuntime() *Runtime {
	store := memory.DefaultInMemoryRunStore()
	return &Runtime{
		runner: usecases.NewDefaultClusterRunner(store),
		store:  store,
	}
}

// NewRuntimeWithStore constructs a runtime around an existing run store,
// e.g. the SQLite or PostgreSQL adapters.
func NewRuntimeWithStore(store run.Store) *Runtime {
	return &Runtime{
		runner: usecases.NewDefaultClusterRunner(store),
		store:  store,
	}
}

// Run executes a clustering run with the provided request
func (rt *Runtime) Run(ctx context.Context, req *dto.RunRequest) (*dto.RunResponse, error) {
	return rt.runner.Run(ctx, req)
}

// Cluster runs DBSCAN over points with a minimal request configuration and
// returns just the partition.
func (rt *Runtime) Cluster(ctx context.Context, points []Point, eps float64, minPts int) (*Result, error) {
	resp, err := rt.runner.Run(ctx, &dto.RunRequest{
		DatasetID: "adhoc",
		Points:    points,
		Eps:       eps,
		MinPts:    minPts,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Clusters: resp.Clusters, Noise: resp.Noise}, nil
}

// Runs lists recorded runs matching the filter
func (rt *Runtime) Runs(ctx context.Context, filter run.Filter) ([]*run.Record, error) {
	return rt.runner.ListRuns(ctx, filter)
}

// Close releases runtime resources
func (rt *Runtime) Close() error {
	if closer, ok := rt.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
