package cluster

import "github.com/chisyliu/trackingAlg-dbscan/internal/core/geom"

// Cluster is a wrapper for a list of points sharing one cluster ID
// PRINCIPLES:
// - KISS: Simple struct, no complex hierarchies
// - SRP: Only responsible for cluster membership, not discovery
//
// CIDs are assigned sequentially from 1 in discovery order. Points are
// kept in the order the expansion added them.
type Cluster struct {
	CID    int          `json:"cid"`
	Points []geom.Point `json:"points"`
}

// AddPoint appends a point to the cluster
func (c *Cluster) AddPoint(p geom.Point) {
	c.Points = append(c.Points, p)
}

// Size returns the number of member points
func (c *Cluster) Size() int {
	return len(c.Points)
}

// Result holds the outcome of one clustering run.
// Every input point appears in exactly one of {some cluster's Points, Noise}.
type Result struct {
	Clusters []Cluster    `json:"clusters"`
	Noise    []geom.Point `json:"noise"`
}

// TotalPoints returns the number of points across clusters and noise
func (r *Result) TotalPoints() int {
	n := len(r.Noise)
	for i := range r.Clusters {
		n += r.Clusters[i].Size()
	}
	return n
}

// ClusterCount returns the number of discovered clusters
func (r *Result) ClusterCount() int {
	return len(r.Clusters)
}

// NoiseCount returns the number of noise points
func (r *Result) NoiseCount() int {
	return len(r.Noise)
}
