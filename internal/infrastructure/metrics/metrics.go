package metrics

import (
	"expvar"
)

// Dataset metrics (counters) using expvar maps keyed by dataset layout.
var (
	datasetRows   = expvar.NewMap("dbscan_dataset_rows_total")
	datasetErrors = expvar.NewMap("dbscan_dataset_row_errors_total")
)

// Engine metrics.
var (
	runsTotal          = new(expvar.Int)
	pointsTotal        = new(expvar.Int)
	clustersTotal      = new(expvar.Int)
	noiseTotal         = new(expvar.Int)
	regionQueriesTotal = new(expvar.Int)
)

func init() {
	expvar.Publish("dbscan_runs_total", runsTotal)
	expvar.Publish("dbscan_points_total", pointsTotal)
	expvar.Publish("dbscan_clusters_total", clustersTotal)
	expvar.Publish("dbscan_noise_total", noiseTotal)
	expvar.Publish("dbscan_region_queries_total", regionQueriesTotal)
}

// Dataset helpers
func DatasetRows(layout string, n int64)      { datasetRows.Add(layout, n) }
func DatasetRowErrors(layout string, n int64) { datasetErrors.Add(layout, n) }

// Engine helpers
func IncRuns()                 { runsTotal.Add(1) }
func IncPoints(n int64)        { pointsTotal.Add(n) }
func IncClusters(n int64)      { clustersTotal.Add(n) }
func IncNoise(n int64)         { noiseTotal.Add(n) }
func IncRegionQueries(n int64) { regionQueriesTotal.Add(n) }
