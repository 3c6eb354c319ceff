package engine

import (
	"github.com/charmbracelet/log"

	"github.com/rushteam/unlox/filter"
	"github.com/rushteam/unlox/pipeline"
	"github.com/rushteam/unlox/rank"
)

// Option 配置 Engine。
type Option func(*Engine)

// WithStrategy 指定排序策略，默认余弦。
func WithStrategy(s rank.Strategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.strategy = s
		}
	}
}

// WithLogger 注入日志；默认丢弃。
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMinScore 覆盖最低相似度阈值（默认 0.10）。
func WithMinScore(score float64) Option {
	return func(e *Engine) {
		e.minScore = score
	}
}

// WithTopK 设置请求未指定 K 时的默认条数。
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithRule 追加一条运营规则过滤（CEL 表达式）。
func WithRule(f *filter.ExprFilter) Option {
	return func(e *Engine) {
		e.rule = f
	}
}

// WithPipeline 用配置描述的节点替换默认链路。
func WithPipeline(nodes []pipeline.NodeConfig) Option {
	return func(e *Engine) {
		e.nodes = nodes
	}
}

// WithConcurrency 限制 RecommendBatch 的并发度，默认 8。
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}
