// Package engine 编排一次推荐：资格过滤 -> 相似度排序 -> 阈值裁剪 -> 推荐理由，
// 并把结果整理为面向展示层的 Recommendation。
package engine

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/unlox/artifact"
	"github.com/rushteam/unlox/config"
	"github.com/rushteam/unlox/config/builders"
	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/explain"
	"github.com/rushteam/unlox/filter"
	"github.com/rushteam/unlox/pipeline"
	"github.com/rushteam/unlox/pkg/utils"
	"github.com/rushteam/unlox/rank"
	"github.com/rushteam/unlox/rerank"
)

// Recommendation 是一条推荐结果。MatchScore 是百分制相似度，保留两位小数。
type Recommendation struct {
	ServiceID    string   `json:"service_id"`
	Name         string   `json:"service_name"`
	MatchScore   float64  `json:"match_score"`
	Description  string   `json:"description"`
	PriceTier    string   `json:"price_tier"`
	BusinessType string   `json:"business_type"`
	Location     string   `json:"location"`
	Explanations []string `json:"explanations"`
}

// Engine 是只读的推荐引擎：构建后不再修改，可被并发请求共享。
// 近邻索引随请求构建，不在请求之间共享。
type Engine struct {
	bundle      *artifact.Bundle
	strategy    rank.Strategy
	minScore    float64
	topK        int
	rule        *filter.ExprFilter
	nodes       []pipeline.NodeConfig
	concurrency int
	logger      *log.Logger
	pipeline    *pipeline.Pipeline
}

// New 校验产物并构建引擎。产物缺失返回 MISSING_ARTIFACT，布局不一致返回 SCHEMA_MISMATCH。
func New(bundle *artifact.Bundle, opts ...Option) (*Engine, error) {
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		bundle:      bundle,
		strategy:    rank.CosineStrategy{},
		minScore:    core.DefaultMinScore,
		topK:        core.DefaultTopK,
		concurrency: 8,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}

	p, err := e.buildPipeline()
	if err != nil {
		return nil, err
	}
	e.pipeline = p

	e.logger.Info("engine ready",
		"services", len(bundle.Catalog),
		"strategy", e.strategy.Name(),
		"min_score", e.minScore,
		"nodes", len(p.Nodes))
	return e, nil
}

func (e *Engine) buildPipeline() (*pipeline.Pipeline, error) {
	if len(e.nodes) > 0 {
		if err := config.ValidateNodes(e.nodes); err != nil {
			return nil, err
		}
		cfg := &pipeline.Config{}
		cfg.Pipeline.Nodes = e.nodes
		p, err := cfg.BuildPipeline(config.DefaultFactory(), pipeline.Deps{
			builders.DepEncoders: e.bundle.Encoders,
			builders.DepLogger:   e.logger,
		})
		if err != nil {
			return nil, err
		}
		e.adoptPipeline(p)
		return p, nil
	}

	filters := filter.Defaults()
	if e.rule != nil {
		filters = append(filters, e.rule)
	}
	return &pipeline.Pipeline{Nodes: []pipeline.Node{
		&filter.FilterNode{Filters: filters, Logger: e.logger},
		&rank.RankNode{Strategy: e.strategy, Encoders: e.bundle.Encoders},
		&rerank.ThresholdNode{MinScore: e.minScore},
		&explain.ExplainNode{},
	}}, nil
}

// adoptPipeline 让配置的节点链与引擎状态一致：排序策略取自链中第一个排序节点，
// 运营规则并入第一个过滤节点（没有过滤节点时插到链首）。
func (e *Engine) adoptPipeline(p *pipeline.Pipeline) {
	for _, n := range p.Nodes {
		if rn, ok := n.(*rank.RankNode); ok && rn.Strategy != nil {
			e.strategy = rn.Strategy
			break
		}
	}
	if e.rule == nil {
		return
	}
	for _, n := range p.Nodes {
		if fn, ok := n.(*filter.FilterNode); ok {
			fn.Filters = append(fn.Filters, e.rule)
			return
		}
	}
	p.Nodes = append([]pipeline.Node{&filter.FilterNode{Filters: []filter.Filter{e.rule}, Logger: e.logger}}, p.Nodes...)
}

// Strategy 返回当前排序策略。
func (e *Engine) Strategy() rank.Strategy { return e.strategy }

// Catalog 返回服务目录（只读）。
func (e *Engine) Catalog() []core.ServiceRecord { return e.bundle.Catalog }

// Recommend 为用户偏好返回至多 k 条推荐（k <= 0 时使用默认条数）。
// 没有候选通过过滤时返回空列表而不是错误。strict=false 会被记录，但仍按严格过滤执行。
func (e *Engine) Recommend(ctx context.Context, pref *core.UserPreference, k int, strict bool) ([]Recommendation, error) {
	if k <= 0 {
		k = e.topK
	}
	if !strict {
		e.logger.Warn("relaxed filtering is not supported, applying strict filters")
	}

	rctx := core.NewRecommendContext(pref, k)
	rctx.Strict = strict
	rctx.PutLabel("strategy", utils.Label{Value: e.strategy.Name(), Source: utils.SourceRequest})

	out, err := e.pipeline.Run(ctx, rctx, e.items())
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(out))
	for _, it := range out {
		recs = append(recs, toRecommendation(it))
	}
	e.logger.Debug("recommend",
		"business_type", rctx.Pref().BusinessType,
		"location", rctx.Pref().Location,
		"k", k,
		"results", len(recs))
	return recs, nil
}

// RecommendRecord 解析展示层传入的原始记录后推荐；记录结构非法时返回 INVALID_INPUT。
func (e *Engine) RecommendRecord(ctx context.Context, record map[string]any, k int) ([]Recommendation, error) {
	pref, err := core.ParseUserPreference(record)
	if err != nil {
		return nil, err
	}
	return e.Recommend(ctx, pref, k, true)
}

// RecommendBatch 并发处理多份偏好，结果与输入一一对应。任一请求失败则整体返回错误。
func (e *Engine) RecommendBatch(ctx context.Context, prefs []*core.UserPreference, k int) ([][]Recommendation, error) {
	results := make([][]Recommendation, len(prefs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, pref := range prefs {
		g.Go(func() error {
			recs, err := e.Recommend(gctx, pref, k, true)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Compare 在 Recommend 使用的同一批合格候选上分别运行余弦与近邻策略（不做阈值裁剪），用于离线评估。
func (e *Engine) Compare(ctx context.Context, pref *core.UserPreference, k int) (*rank.Comparison, error) {
	if k <= 0 {
		k = e.topK
	}
	rctx := core.NewRecommendContext(pref, k)
	eligible, err := e.eligible(ctx, rctx)
	if err != nil {
		return nil, err
	}
	cands := make([]rank.Candidate, len(eligible))
	for i, it := range eligible {
		cands[i] = rank.Candidate{Index: it.Index, Vector: it.Vector}
	}
	var user []float64
	if len(cands) > 0 {
		user = e.bundle.Encoders.EncodeUser(rctx.Pref())
	}
	return rank.Compare(user, cands, k), nil
}

// eligible 只运行链路中的过滤节点，得到排序前的候选。
func (e *Engine) eligible(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	var filters []pipeline.Node
	for _, n := range e.pipeline.Nodes {
		if n.Kind() == pipeline.KindFilter {
			filters = append(filters, n)
		}
	}
	return (&pipeline.Pipeline{Nodes: filters}).Run(ctx, rctx, e.items())
}

func (e *Engine) items() []*core.Item {
	items := make([]*core.Item, len(e.bundle.Catalog))
	for i := range e.bundle.Catalog {
		items[i] = core.NewItem(i, &e.bundle.Catalog[i], e.bundle.Matrix.Row(i))
	}
	return items
}

func toRecommendation(it *core.Item) Recommendation {
	svc := it.Service
	score, _ := decimal.NewFromFloat(it.Score).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return Recommendation{
		ServiceID:    svc.ServiceID,
		Name:         svc.Name,
		MatchScore:   score,
		Description:  svc.Description,
		PriceTier:    string(svc.PriceTier),
		BusinessType: svc.BusinessType,
		Location:     svc.Location,
		Explanations: it.Explanations,
	}
}
