package index

import (
	"math"
	"sort"

	"github.com/chisyliu/trackingAlg-dbscan/internal/core/geom"
	"github.com/chisyliu/trackingAlg-dbscan/internal/infrastructure/metrics"
)

// cellKey addresses one grid cell
type cellKey struct {
	cx, cy int64
}

// Grid is a uniform-cell spatial index with eps-sized cells.
// A query only has to examine the 3x3 block of cells around the query
// point, so average query cost drops to the local point density.
// Results are identical to BruteForce: same inclusive boundary, same
// self-inclusion, same ascending index order.
type Grid struct {
	points []geom.Point
	eps2   float64
	cell   float64
	cells  map[cellKey][]int
}

// NewGrid builds a grid index over points in one O(n) pass
func NewGrid(points []geom.Point, eps float64) *Grid {
	g := &Grid{
		points: points,
		eps2:   eps * eps,
		cell:   eps,
		cells:  make(map[cellKey][]int, len(points)),
	}
	for i := range points {
		key := g.keyFor(points[i])
		g.cells[key] = append(g.cells[key], i)
	}
	return g
}

func (g *Grid) keyFor(p geom.Point) cellKey {
	return cellKey{
		cx: int64(math.Floor(p.X / g.cell)),
		cy: int64(math.Floor(p.Y / g.cell)),
	}
}

// Neighbors returns all point indices within eps of point i, i included
func (g *Grid) Neighbors(i int) []int {
	p := g.points[i]
	center := g.keyFor(p)

	neighbors := make([]int, 0, 8)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			bucket := g.cells[cellKey{cx: center.cx + dx, cy: center.cy + dy}]
			for _, j := range bucket {
				if geom.SquaredDistance(p, g.points[j]) <= g.eps2 {
					neighbors = append(neighbors, j)
				}
			}
		}
	}
	// Buckets are visited in cell order, not index order.
	sort.Ints(neighbors)
	metrics.IncRegionQueries(1)
	return neighbors
}

// Len returns the number of indexed points
func (g *Grid) Len() int {
	return len(g.points)
}
