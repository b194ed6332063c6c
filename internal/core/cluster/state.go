// Package cluster provides the core density-based clustering engine
// following Clean Architecture principles with zero app dependencies.
package cluster

// PointState is the per-point classification tracked during a scan.
// Transitions are monotonic: Unvisited -> Visited -> {Noise | Clustered}.
// A Noise point may later be upgraded to Clustered when some cluster's
// expansion reaches it (border point); a Clustered point never changes.
type PointState uint8

const (
	// StateUnvisited marks a point the scan has not reached yet
	StateUnvisited PointState = iota
	// StateVisited marks a point whose neighborhood has been computed
	StateVisited
	// StateNoise marks a point that is neither core nor (yet) border
	StateNoise
	// StateClustered marks a point that belongs to a cluster
	StateClustered
)

// String returns a human-readable state name
func (s PointState) String() string {
	switch s {
	case StateUnvisited:
		return "unvisited"
	case StateVisited:
		return "visited"
	case StateNoise:
		return "noise"
	case StateClustered:
		return "clustered"
	default:
		return "unknown"
	}
}
