// Package index provides eps-neighborhood queries over a fixed point set.
//
// Every implementation returns, for a query point, the indices of all points
// within Euclidean distance eps inclusive, the query point itself included,
// in ascending index order. Those three guarantees keep implementations
// interchangeable without changing cluster membership or traversal order.
package index

import (
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/geom"
	"github.com/chisyliu/trackingAlg-dbscan/internal/infrastructure/metrics"
)

// BruteForce is the reference index: one O(n) pass per query
// PRINCIPLES:
// - KISS: No structure to maintain, just the point slice
// - SRP: Only answers radius queries, holds no clustering state
type BruteForce struct {
	points []geom.Point
	eps2   float64
}

// NewBruteForce creates a brute-force index over points.
// Radius checks compare squared distances against eps*eps.
func NewBruteForce(points []geom.Point, eps float64) *BruteForce {
	return &BruteForce{points: points, eps2: eps * eps}
}

// Neighbors returns all point indices within eps of point i, i included
func (b *BruteForce) Neighbors(i int) []int {
	p := b.points[i]
	neighbors := make([]int, 0, 8)
	for j := range b.points {
		if geom.SquaredDistance(p, b.points[j]) <= b.eps2 {
			neighbors = append(neighbors, j)
		}
	}
	metrics.IncRegionQueries(1)
	return neighbors
}

// Len returns the number of indexed points
func (b *BruteForce) Len() int {
	return len(b.points)
}
