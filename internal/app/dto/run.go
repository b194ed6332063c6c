package dto

import (
	"time"

	"github.com/chisyliu/trackingAlg-dbscan/internal/core/cluster"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/geom"
)

// IndexKind selects the neighborhood index implementation
type IndexKind string

const (
	// IndexBruteForce is the reference O(n)-per-query scan
	IndexBruteForce IndexKind = "brute"
	// IndexGrid is the eps-cell spatial grid accelerator
	IndexGrid IndexKind = "grid"
)

// RunRequest represents a request to cluster a point set
type RunRequest struct {
	DatasetID string       `json:"dataset_id" validate:"required"`
	Points    []geom.Point `json:"points"`
	Eps       float64      `json:"eps" validate:"required,gt=0"`
	MinPts    int          `json:"min_pts" validate:"required,min=1"`
	Config    RunConfig    `json:"config"`
}

// RunConfig contains configuration for a clustering run
type RunConfig struct {
	Index     IndexKind `json:"index" validate:"omitempty,index_kind"` // Neighborhood index implementation
	Parallel  bool      `json:"parallel"`                              // Precompute neighborhoods with a worker pool
	Workers   int       `json:"workers"`                               // Worker pool size, 0 = GOMAXPROCS
	RecordRun bool      `json:"record_run"`                            // Persist a run record after completion
}

// RunResponse represents the outcome of a clustering run
type RunResponse struct {
	RunID        string            `json:"run_id"`
	DatasetID    string            `json:"dataset_id"`
	Status       RunStatus         `json:"status"`
	Clusters     []cluster.Cluster `json:"clusters"`
	Noise        []geom.Point      `json:"noise"`
	PointCount   int               `json:"point_count"`
	ClusterCount int               `json:"cluster_count"`
	NoiseCount   int               `json:"noise_count"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      time.Time         `json:"end_time"`
	Duration     time.Duration     `json:"duration"`
	Error        string            `json:"error,omitempty"`
}

// RunStatus represents the status of a clustering run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunContext holds the in-flight state of a clustering run
type RunContext struct {
	RunID     string
	DatasetID string
	Params    cluster.Params
	Config    RunConfig
	StartTime time.Time
}

// Validate validates the run request and fills config defaults.
// Parameter failures surface here, before any scan begins.
func (req *RunRequest) Validate() error {
	if req.DatasetID == "" {
		return ErrMissingDatasetID
	}
	if err := (cluster.Params{Eps: req.Eps, MinPts: req.MinPts}).Validate(); err != nil {
		return err
	}
	switch req.Config.Index {
	case "":
		req.Config.Index = IndexBruteForce // Default value
	case IndexBruteForce, IndexGrid:
	default:
		return ErrUnknownIndexKind
	}
	if req.Config.Workers < 0 {
		req.Config.Workers = 0 // 0 delegates to GOMAXPROCS
	}
	return nil
}
