// Package dbscan provides a minimal public façade for density-based
// clustering without importing internal packages. It re-exports the core
// point and result types for convenience and exposes a Runtime with simple
// methods to cluster point sets and inspect recorded runs.
package dbscan
