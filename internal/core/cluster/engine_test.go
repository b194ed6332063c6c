package cluster

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisyliu/trackingAlg-dbscan/internal/core/geom"
)

func clusterIDs(c Cluster) []string {
	ids := make([]string, 0, len(c.Points))
	for _, p := range c.Points {
		ids = append(ids, p.ID)
	}
	return ids
}

func noiseIDs(r *Result) []string {
	ids := make([]string, 0, len(r.Noise))
	for _, p := range r.Noise {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestEngine_Run_ChainCluster(t *testing.T) {
	// a-b and b-c are each within eps; a-c is not. All three are
	// chain-reachable through b.
	points := []geom.Point{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 0, Y: 0.5},
		{ID: "c", X: 0, Y: 1.0},
	}

	result, err := NewEngine().Run(points, Params{Eps: 0.6, MinPts: 2})
	require.NoError(t, err)

	require.Len(t, result.Clusters, 1)
	assert.Equal(t, 1, result.Clusters[0].CID)
	assert.Equal(t, []string{"a", "b", "c"}, clusterIDs(result.Clusters[0]))
	assert.Empty(t, result.Noise)
}

func TestEngine_Run_AllNoise(t *testing.T) {
	points := []geom.Point{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 0, Y: 0.5},
		{ID: "c", X: 0, Y: 1.0},
	}

	result, err := NewEngine().Run(points, Params{Eps: 0.4, MinPts: 2})
	require.NoError(t, err)

	assert.Empty(t, result.Clusters)
	// Noise keeps original input order.
	assert.Equal(t, []string{"a", "b", "c"}, noiseIDs(result))
}

func TestEngine_Run_EmptyInput(t *testing.T) {
	result, err := NewEngine().Run(nil, Params{Eps: 1, MinPts: 3})
	require.NoError(t, err)
	assert.Empty(t, result.Clusters)
	assert.Empty(t, result.Noise)
	assert.Equal(t, 0, result.TotalPoints())
}

func TestEngine_Run_TwoClustersOneIsolated(t *testing.T) {
	points := []geom.Point{
		{ID: "l1", X: 0, Y: 0},
		{ID: "l2", X: 0.1, Y: 0},
		{ID: "l3", X: 0, Y: 0.1},
		{ID: "mid", X: 5, Y: 5},
		{ID: "r1", X: 10, Y: 10},
		{ID: "r2", X: 10.1, Y: 10},
		{ID: "r3", X: 10, Y: 10.1},
	}

	result, err := NewEngine().Run(points, Params{Eps: 0.3, MinPts: 3})
	require.NoError(t, err)

	require.Len(t, result.Clusters, 2)
	assert.Equal(t, 1, result.Clusters[0].CID)
	assert.Equal(t, 2, result.Clusters[1].CID)
	assert.ElementsMatch(t, []string{"l1", "l2", "l3"}, clusterIDs(result.Clusters[0]))
	assert.ElementsMatch(t, []string{"r1", "r2", "r3"}, clusterIDs(result.Clusters[1]))
	assert.Equal(t, []string{"mid"}, noiseIDs(result))
}

func TestEngine_Run_MinPtsBoundary(t *testing.T) {
	// Two points within eps of each other: each neighborhood has
	// exactly 2 members including self.
	points := []geom.Point{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 0.1, Y: 0},
	}

	// |N| == minPts: both are core.
	result, err := NewEngine().Run(points, Params{Eps: 0.2, MinPts: 2})
	require.NoError(t, err)
	require.Len(t, result.Clusters, 1)
	assert.Empty(t, result.Noise)

	// |N| == minPts - 1: nobody seeds a cluster.
	result, err = NewEngine().Run(points, Params{Eps: 0.2, MinPts: 3})
	require.NoError(t, err)
	assert.Empty(t, result.Clusters)
	assert.Len(t, result.Noise, 2)
}

func TestEngine_Run_InclusiveBoundary(t *testing.T) {
	// The pair sits at exactly eps apart; <= means they see each other.
	points := []geom.Point{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 0.5, Y: 0},
	}

	result, err := NewEngine().Run(points, Params{Eps: 0.5, MinPts: 2})
	require.NoError(t, err)
	require.Len(t, result.Clusters, 1)
	assert.Len(t, result.Clusters[0].Points, 2)
}

func TestEngine_Run_BorderPointOwnership(t *testing.T) {
	left := []geom.Point{
		{ID: "l1", X: 0, Y: 0},
		{ID: "l2", X: 0.2, Y: 0},
		{ID: "l3", X: 0.4, Y: 0},
		{ID: "l4", X: 0.2, Y: 0.2},
	}
	right := []geom.Point{
		{ID: "r1", X: 1.4, Y: 0},
		{ID: "r2", X: 1.6, Y: 0},
		{ID: "r3", X: 1.8, Y: 0},
		{ID: "r4", X: 1.6, Y: 0.2},
	}
	border := geom.Point{ID: "b", X: 0.9, Y: 0}

	points := append(append(append([]geom.Point{}, left...), border), right...)

	// The border point is within eps of both core regions but its own
	// neighborhood is too small to make it core. The first cluster to
	// reach it in scan order claims it.
	result, err := NewEngine().Run(points, Params{Eps: 0.5, MinPts: 4})
	require.NoError(t, err)

	require.Len(t, result.Clusters, 2)
	assert.Contains(t, clusterIDs(result.Clusters[0]), "b")
	assert.NotContains(t, clusterIDs(result.Clusters[1]), "b")
	assert.Empty(t, result.Noise)
}

func TestEngine_Run_NoiseUpgradedToBorder(t *testing.T) {
	// The border point comes first in input order, so the scan labels it
	// noise before any cluster exists. The later expansion upgrades it.
	points := []geom.Point{
		{ID: "b", X: 0.9, Y: 0},
		{ID: "l1", X: 0, Y: 0},
		{ID: "l2", X: 0.2, Y: 0},
		{ID: "l3", X: 0.4, Y: 0},
		{ID: "l4", X: 0.2, Y: 0.2},
	}

	result, err := NewEngine().Run(points, Params{Eps: 0.5, MinPts: 4})
	require.NoError(t, err)

	require.Len(t, result.Clusters, 1)
	assert.Contains(t, clusterIDs(result.Clusters[0]), "b")
	assert.Empty(t, result.Noise)
}

func TestEngine_Run_DuplicatePoints(t *testing.T) {
	// Same ID and same coordinates three times over: tracked by input
	// position, every copy lands in the cluster exactly once.
	points := []geom.Point{
		{ID: "x", X: 1, Y: 1},
		{ID: "x", X: 1, Y: 1},
		{ID: "x", X: 1, Y: 1},
	}

	result, err := NewEngine().Run(points, Params{Eps: 0.5, MinPts: 3})
	require.NoError(t, err)

	require.Len(t, result.Clusters, 1)
	assert.Len(t, result.Clusters[0].Points, 3)
	assert.Equal(t, 3, result.TotalPoints())
}

func TestEngine_Run_InvalidArguments(t *testing.T) {
	points := []geom.Point{{ID: "a", X: 0, Y: 0}}

	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{name: "zero eps", params: Params{Eps: 0, MinPts: 2}, wantErr: ErrInvalidEps},
		{name: "negative eps", params: Params{Eps: -0.5, MinPts: 2}, wantErr: ErrInvalidEps},
		{name: "nan eps", params: Params{Eps: math.NaN(), MinPts: 2}, wantErr: ErrInvalidEps},
		{name: "zero minPts", params: Params{Eps: 0.5, MinPts: 0}, wantErr: ErrInvalidMinPts},
		{name: "negative minPts", params: Params{Eps: 0.5, MinPts: -1}, wantErr: ErrInvalidMinPts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewEngine().Run(points, tt.params)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEngine_Run_NonFinitePoint(t *testing.T) {
	points := []geom.Point{
		{ID: "a", X: 0, Y: 0},
		{ID: "bad", X: math.NaN(), Y: 0},
	}

	result, err := NewEngine().Run(points, Params{Eps: 0.5, MinPts: 2})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func randomPoints(n int, seed int64) []geom.Point {
	rng := rand.New(rand.NewSource(seed))
	points := make([]geom.Point, n)
	for i := range points {
		points[i] = geom.Point{
			ID: string(rune('a' + i%26)),
			X:  rng.Float64() * 10,
			Y:  rng.Float64() * 10,
		}
	}
	return points
}

func TestEngine_Run_PartitionProperty(t *testing.T) {
	points := randomPoints(80, 1)

	for _, eps := range []float64{0.3, 0.8, 1.5, 3.0} {
		result, err := NewEngine().Run(points, Params{Eps: eps, MinPts: 3})
		require.NoError(t, err)
		assert.Equal(t, len(points), result.TotalPoints(), "eps=%v", eps)
	}
}

func TestEngine_Run_Deterministic(t *testing.T) {
	points := randomPoints(60, 2)
	params := Params{Eps: 1.0, MinPts: 3}

	first, err := NewEngine().Run(points, params)
	require.NoError(t, err)
	second, err := NewEngine().Run(points, params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEngine_Run_NoiseMonotoneInEps(t *testing.T) {
	// Growing eps can only merge or grow clusters, never split them,
	// so the noise count never increases.
	points := randomPoints(100, 3)

	prev := len(points) + 1
	for _, eps := range []float64{0.2, 0.4, 0.8, 1.6, 3.2} {
		result, err := NewEngine().Run(points, Params{Eps: eps, MinPts: 3})
		require.NoError(t, err)
		assert.LessOrEqual(t, result.NoiseCount(), prev, "eps=%v", eps)
		prev = result.NoiseCount()
	}
}
