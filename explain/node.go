package explain

import (
	"context"

	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/pipeline"
	"github.com/rushteam/unlox/pkg/utils"
)

// ExplainNode 为每个 item 写入 Explanations，不改变顺序与数量。
type ExplainNode struct {
	Generator Generator
}

func (n *ExplainNode) Name() string        { return "explain.reasons" }
func (n *ExplainNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *ExplainNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	pref := rctx.Pref()
	for _, it := range items {
		if it == nil || it.Service == nil {
			continue
		}
		it.Explanations = n.Generator.Explain(it.Service, pref)
		it.PutLabel("explained", utils.Label{Value: "true", Source: utils.SourceExplain})
	}
	return items, nil
}
