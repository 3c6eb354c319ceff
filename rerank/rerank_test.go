package rerank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/unlox/core"
)

func scored(scores ...float64) []*core.Item {
	items := make([]*core.Item, len(scores))
	for i, s := range scores {
		items[i] = &core.Item{Index: i, Score: s}
	}
	return items
}

func indexes(items []*core.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Index
	}
	return out
}

func TestThresholdNode(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   []int
	}{
		{name: "drops below cutoff", scores: []float64{0.9, 0.05, 0.3}, want: []int{0, 2}},
		{name: "keeps exact cutoff", scores: []float64{0.10, 0.0999}, want: []int{0}},
		{name: "all dropped", scores: []float64{0.01}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := (&ThresholdNode{MinScore: core.DefaultMinScore}).Process(context.Background(), nil, scored(tt.scores...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, indexes(out))
		})
	}
}

func TestTopNNode(t *testing.T) {
	items := scored(0.9, 0.8, 0.7)
	out, err := (&TopNNode{N: 2}).Process(context.Background(), nil, items)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, indexes(out))

	out, err = (&TopNNode{}).Process(context.Background(), nil, items)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}
