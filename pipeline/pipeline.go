package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/unlox/core"
)

// Pipeline 把推荐逻辑拆成可组合的 Node 链：过滤 -> 排序 -> 阈值 -> 解释。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行各 Node。任一 Node 输出为空时提前结束并返回空列表（不是错误）。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		cur = next
		if len(cur) == 0 {
			return []*core.Item{}, nil
		}
	}
	return cur, nil
}
