// Package geom provides the core spatial domain entities
// following Clean Architecture principles with zero app dependencies.
package geom

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Point represents a labeled 2-D observation
// PRINCIPLES:
// - KISS: Simple struct, no complex hierarchies
// - SRP: Only responsible for point data, not clustering state
//
// IDs don't have to be unique; clustering tracks points by input position.
type Point struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Validate ensures coordinates are finite numbers
func (p Point) Validate() error {
	if math.IsNaN(p.X) || math.IsInf(p.X, 0) {
		return ErrNonFiniteCoordinate
	}
	if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
		return ErrNonFiniteCoordinate
	}
	return nil
}

// Coords returns the coordinates as a vector
func (p Point) Coords() []float64 {
	return []float64{p.X, p.Y}
}

// Distance returns the Euclidean distance between p and q.
// The ID plays no part in distance.
func Distance(p, q Point) float64 {
	return floats.Distance(p.Coords(), q.Coords(), 2)
}

// SquaredDistance returns the squared Euclidean distance between p and q.
// Radius checks compare against eps*eps to skip the sqrt on the hot path.
func SquaredDistance(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}
