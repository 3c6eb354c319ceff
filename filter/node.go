package filter

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/pipeline"
	"github.com/rushteam/unlox/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该服务就会被过滤掉；结果保持输入顺序。
type FilterNode struct {
	Filters []Filter

	// Logger 可选；过滤器出错时记录，出错的过滤器对该服务视为不过滤。
	Logger *log.Logger
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil || item.Service == nil {
			continue
		}

		reason := ""
		for _, f := range n.Filters {
			drop, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				if n.Logger != nil {
					n.Logger.Warn("filter failed", "filter", f.Name(), "service", item.Service.ServiceID, "err", err)
				}
				continue
			}
			if drop {
				reason = f.Name()
				break
			}
		}

		if reason != "" {
			item.PutLabel("filtered", utils.Label{Value: "true", Source: reason})
			continue
		}
		out = append(out, item)
	}

	if n.Logger != nil {
		n.Logger.Debug("eligibility filter", "in", len(items), "out", len(out))
	}
	return out, nil
}
