package pipeline

import (
	"context"

	"github.com/rushteam/unlox/core"
)

// Kind 用于标记 Node 类型，方便观测与编排（例如按阶段打点）。
type Kind string

const (
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合硬性约束的候选
	KindRank        Kind = "rank"        // 排序阶段：对候选打分并排序
	KindReRank      Kind = "rerank"      // 重排阶段：阈值裁剪、截断
	KindPostProcess Kind = "postprocess" // 后处理阶段：生成推荐理由等结果修饰
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态，方便过滤截断、排序、阈值裁剪等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
