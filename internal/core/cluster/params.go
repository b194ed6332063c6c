package cluster

import "math"

// Params holds the two DBSCAN tuning parameters
type Params struct {
	// Eps is the neighborhood radius. Membership is inclusive:
	// a point at exactly distance Eps is a neighbor.
	Eps float64 `json:"eps"`
	// MinPts is the minimum neighborhood size (self-inclusive)
	// for a point to qualify as a core point.
	MinPts int `json:"min_pts"`
}

// Validate ensures parameter integrity
// PRINCIPLES:
// - SRP: Single responsibility - validation only
// - KISS: Simple validation rules, easy to understand
func (p Params) Validate() error {
	if p.Eps <= 0 || math.IsNaN(p.Eps) || math.IsInf(p.Eps, 0) {
		return ErrInvalidEps
	}
	if p.MinPts < 1 {
		return ErrInvalidMinPts
	}
	return nil
}
