package cluster

import (
	"fmt"

	"github.com/chisyliu/trackingAlg-dbscan/internal/core/geom"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/index"
)

// NeighborhoodIndex answers eps-radius queries over a fixed point set
// PRINCIPLES:
// - ISP: Single-method interface
// - DIP: The engine depends on this abstraction, not a concrete index
type NeighborhoodIndex interface {
	// Neighbors returns the indices of every point within eps of point i,
	// including i itself. The boundary is inclusive (<=, not <): a point
	// at exactly distance eps is a neighbor. Indices are ascending so
	// substituting index implementations keeps traversal order stable.
	Neighbors(i int) []int
}

// IndexBuilder constructs a NeighborhoodIndex for one run
type IndexBuilder func(points []geom.Point, eps float64) NeighborhoodIndex

// Engine runs DBSCAN over a point set
// PRINCIPLES:
// - KISS: Explicit worklist instead of recursion
// - SRP: Focuses only on classification and expansion, not I/O
//
// All scan state lives in the Run call's scope, so an Engine is safe for
// concurrent and repeated use.
type Engine struct {
	buildIndex IndexBuilder
}

// Option configures an Engine
type Option func(*Engine)

// WithIndexBuilder substitutes the neighborhood index implementation.
// Any implementation must preserve the inclusive boundary and
// self-inclusion; cluster membership is unchanged by the substitution.
func WithIndexBuilder(b IndexBuilder) Option {
	return func(e *Engine) {
		if b != nil {
			e.buildIndex = b
		}
	}
}

// NewEngine creates an engine with sensible defaults.
// The default neighborhood query is a brute-force O(n) scan.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{buildIndex: func(points []geom.Point, eps float64) NeighborhoodIndex {
		return index.NewBruteForce(points, eps)
	}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run partitions points into density-connected clusters plus noise.
//
// Points are scanned in input order; scan order determines cluster IDs and
// which cluster claims a shared border point, but not cluster membership of
// core points. Duplicate IDs and coordinates are fine: visitation is
// tracked by input position, never by ID or value.
func (e *Engine) Run(points []geom.Point, params Params) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	for i := range points {
		if err := points[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w at index %d (id=%q): %v", ErrInvalidPoint, i, points[i].ID, err)
		}
	}

	result := &Result{Clusters: []Cluster{}, Noise: []geom.Point{}}
	if len(points) == 0 {
		return result, nil
	}

	idx := e.buildIndex(points, params.Eps)

	// Scan state is owned by this invocation alone.
	states := make([]PointState, len(points))
	assigned := make([]int, len(points)) // CID per point, 0 = none

	for i := range points {
		if states[i] != StateUnvisited {
			continue
		}
		states[i] = StateVisited

		neighborhood := idx.Neighbors(i)
		if len(neighborhood) < params.MinPts {
			// Tentative: a later cluster's expansion may upgrade
			// this point to a border member.
			states[i] = StateNoise
			continue
		}

		// Core point: seed a new cluster and expand it.
		cid := len(result.Clusters) + 1
		c := Cluster{CID: cid}
		c.AddPoint(points[i])
		states[i] = StateClustered
		assigned[i] = cid

		worklist := make([]int, 0, len(neighborhood))
		for _, j := range neighborhood {
			if j != i {
				worklist = append(worklist, j)
			}
		}

		for len(worklist) > 0 {
			j := worklist[0]
			worklist = worklist[1:]

			switch states[j] {
			case StateNoise:
				// Border point: reachable from a core point but not
				// dense enough to seed further expansion.
				states[j] = StateClustered
				assigned[j] = cid
				c.AddPoint(points[j])
			case StateUnvisited:
				states[j] = StateVisited
				reachable := idx.Neighbors(j)
				states[j] = StateClustered
				assigned[j] = cid
				c.AddPoint(points[j])
				if len(reachable) >= params.MinPts {
					// j is itself core; its neighborhood joins the
					// cluster. Points already claimed by any cluster
					// are never re-enqueued.
					for _, k := range reachable {
						if states[k] == StateUnvisited || states[k] == StateNoise {
							worklist = append(worklist, k)
						}
					}
				}
			default:
				// Already claimed, possibly enqueued twice before the
				// first pop classified it.
			}
		}

		result.Clusters = append(result.Clusters, c)
	}

	// Whatever is still noise after the full scan is final noise,
	// reported in original input order.
	for i := range points {
		if states[i] == StateNoise {
			result.Noise = append(result.Noise, points[i])
		}
	}

	return result, nil
}
