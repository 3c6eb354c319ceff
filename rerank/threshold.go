package rerank

import (
	"context"

	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/pipeline"
)

// ThresholdNode 丢弃相似度低于 MinScore 的服务，其余保持原顺序。
// 恰好等于 MinScore 的服务保留。
type ThresholdNode struct {
	MinScore float64
}

func (n *ThresholdNode) Name() string {
	return "rerank.threshold"
}

func (n *ThresholdNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *ThresholdNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	out := items[:0:0]
	for _, it := range items {
		if it == nil || it.Score < n.MinScore {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
