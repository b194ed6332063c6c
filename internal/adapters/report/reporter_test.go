package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisyliu/trackingAlg-dbscan/internal/core/cluster"
	"github.com/chisyliu/trackingAlg-dbscan/internal/core/geom"
)

func sampleResult() *cluster.Result {
	return &cluster.Result{
		Clusters: []cluster.Cluster{
			{CID: 1, Points: []geom.Point{
				{ID: "a", X: 0, Y: 0},
				{ID: "b", X: 0.5, Y: 0},
			}},
			{CID: 2, Points: []geom.Point{
				{ID: "c", X: 10, Y: 10},
			}},
		},
		Noise: []geom.Point{{ID: "n", X: 5, Y: 5}},
	}
}

func TestTextReporter_Report(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextReporter(&buf).Report(sampleResult()))

	want := "Cluster 1\n" +
		"id = a x = 0.000000 y = 0.000000\n" +
		"id = b x = 0.500000 y = 0.000000\n" +
		"Cluster 2\n" +
		"id = c x = 10.000000 y = 10.000000\n" +
		"Noise\n" +
		"id = n x = 5.000000 y = 5.000000\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_Report_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextReporter(&buf).Report(&cluster.Result{}))
	assert.Equal(t, "Noise\n", buf.String())
}

func TestJSONReporter_Report(t *testing.T) {
	result := sampleResult()

	for _, indent := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, NewJSONReporter(&buf, indent).Report(result))

		var decoded cluster.Result
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, *result, decoded)
	}
}
