package rank

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/feature"
)

func TestMetrics(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float64{1, 2}, []float64{2, 4}), 1e-12)
	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-12)
	assert.Zero(t, Cosine([]float64{0, 0}, []float64{1, 1}))
	assert.InDelta(t, 5.0, Euclidean([]float64{0, 0}, []float64{3, 4}), 1e-12)
	assert.Equal(t, 1.0, DistanceScore(0))
	assert.InDelta(t, 1.0/6.0, DistanceScore(5), 1e-12)
}

func candidates() []Candidate {
	return []Candidate{
		{Index: 0, Vector: []float64{0, 1}},
		{Index: 2, Vector: []float64{1, 0}},
		{Index: 5, Vector: []float64{1, 1}},
		{Index: 7, Vector: []float64{2, 0}},
	}
}

func TestStrategies(t *testing.T) {
	user := []float64{1, 0}
	tests := []struct {
		name      string
		strategy  Strategy
		k         int
		wantIndex []int
	}{
		{name: "cosine ties keep catalog order", strategy: CosineStrategy{}, k: 3, wantIndex: []int{2, 7, 5}},
		{name: "cosine all when k<=0", strategy: CosineStrategy{}, k: 0, wantIndex: []int{2, 7, 5, 0}},
		{name: "knn min(k, n)", strategy: NeighborStrategy{}, k: 10, wantIndex: []int{2, 5, 7, 0}},
		{name: "knn k=2", strategy: NeighborStrategy{}, k: 2, wantIndex: []int{2, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.strategy.Rank(user, candidates(), tt.k)
			idx := make([]int, len(got))
			for i, s := range got {
				idx[i] = s.Index
				if i > 0 {
					assert.LessOrEqual(t, s.Score, got[i-1].Score)
				}
			}
			assert.Equal(t, tt.wantIndex, idx)
		})
	}
}

func TestNeighborStrategy_Scores(t *testing.T) {
	got := NeighborStrategy{}.Rank([]float64{1, 0}, candidates(), 2)
	require.Len(t, got, 2)
	assert.Equal(t, 1.0, got[0].Score)
	assert.InDelta(t, 1/(1+math.Sqrt(1)), got[1].Score, 1e-12)
}

func TestStrategies_Empty(t *testing.T) {
	assert.Empty(t, CosineStrategy{}.Rank([]float64{1}, nil, 5))
	assert.Empty(t, NeighborStrategy{}.Rank([]float64{1}, nil, 5))
}

func TestParseStrategy(t *testing.T) {
	for name, want := range map[string]string{"": "cosine", "Cosine": "cosine", "knn": "knn", "euclidean": "knn"} {
		s, err := ParseStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, want, s.Name())
	}
	_, err := ParseStrategy("ann")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	c := Compare([]float64{1, 0}, candidates(), 2)
	assert.Equal(t, []int{2}, c.Overlap)
	assert.InDelta(t, 1.0/3.0, c.Jaccard(), 1e-12)
	assert.Equal(t, 1.0, (&Comparison{}).Jaccard())
}

func TestRankNode(t *testing.T) {
	catalog := []core.ServiceRecord{
		{ServiceID: "S1", Description: "seo marketing", BusinessType: "retail", PriceTier: "low", Location: "delhi", Language: "english"},
		{ServiceID: "S2", Description: "payroll accounting", BusinessType: "retail", PriceTier: "low", Location: "delhi", Language: "english"},
		{ServiceID: "S3", Description: "seo audit", BusinessType: "retail", PriceTier: "low", Location: "delhi", Language: "english"},
	}
	enc, m := feature.Fit(catalog)
	items := make([]*core.Item, len(catalog))
	for i := range catalog {
		items[i] = core.NewItem(i, &catalog[i], m.Row(i))
	}

	rctx := core.NewRecommendContext(&core.UserPreference{Description: "seo marketing", PriceTier: "low", Languages: []string{"english"}, Location: "delhi", BusinessType: "retail"}, 2)
	node := &RankNode{Strategy: CosineStrategy{}, Encoders: enc}
	out, err := node.Process(context.Background(), rctx, items)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "S1", out[0].Service.ServiceID)
	assert.Equal(t, "S3", out[1].Service.ServiceID)
	assert.InDelta(t, 1.0, out[0].Score, 1e-9)
	lbl, ok := out[0].GetLabel("rank_strategy")
	require.True(t, ok)
	assert.Equal(t, "cosine", lbl.Value)

	empty, err := node.Process(context.Background(), rctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	bad := []*core.Item{core.NewItem(0, &catalog[0], []float64{1})}
	_, err = node.Process(context.Background(), rctx, bad)
	assert.True(t, core.IsSchemaMismatch(err))
}
