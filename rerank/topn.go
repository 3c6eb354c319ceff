// Package rerank 在排序结果上做裁剪：最低分阈值与 Top-N 截断。
package rerank

import (
	"context"

	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在排序后截取前 N 个服务。
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.RankNode{...},
//	        &rerank.ThresholdNode{MinScore: 0.1},
//	        &rerank.TopNNode{N: 5},
//	    },
//	}
type TopNNode struct {
	// N 要保留的数量；N <= 0 时不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
