// Package builders 注册内置 Node 的配置构建器。
package builders

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/rushteam/unlox/config"
	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/explain"
	"github.com/rushteam/unlox/feature"
	"github.com/rushteam/unlox/filter"
	"github.com/rushteam/unlox/pipeline"
	"github.com/rushteam/unlox/pkg/conv"
	"github.com/rushteam/unlox/rank"
	"github.com/rushteam/unlox/rerank"
)

// 构建器可读取的运行时依赖 key。
const (
	DepEncoders = "encoders" // *feature.Encoders
	DepLogger   = "logger"   // *log.Logger
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("rank.similarity", BuildRankNode)
	config.Register("rerank.threshold", BuildThresholdNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("explain.reasons", BuildExplainNode)
}

// BuildFilterNode 配置示例：
//
//	type: filter
//	config:
//	  filters:
//	    - type: business_type
//	    - type: budget
//	    - type: location
//	    - type: expr
//	      rule: 'service.location != "mumbai"'
//
// 不写 filters 时使用默认的三条硬性过滤。
func BuildFilterNode(cfg map[string]any, deps pipeline.Deps) (pipeline.Node, error) {
	logger, _ := deps[DepLogger].(*log.Logger)
	raw, ok := cfg["filters"].([]any)
	if !ok {
		return &filter.FilterNode{Filters: filter.Defaults(), Logger: logger}, nil
	}

	filters := make([]filter.Filter, 0, len(raw))
	for _, fc := range raw {
		fm, ok := fc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("filter entry must be a map, got %T", fc)
		}
		switch t := conv.ConfigGet(fm, "type", ""); t {
		case "business_type":
			filters = append(filters, &filter.BusinessTypeFilter{})
		case "budget":
			filters = append(filters, &filter.BudgetFilter{})
		case "location":
			filters = append(filters, &filter.LocationFilter{})
		case "expr":
			f, err := filter.NewExprFilter(conv.ConfigGet(fm, "rule", ""))
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", t)
		}
	}
	return &filter.FilterNode{Filters: filters, Logger: logger}, nil
}

// BuildRankNode 配置：strategy（cosine|knn），top_k（0 表示沿用请求的 K）。
func BuildRankNode(cfg map[string]any, deps pipeline.Deps) (pipeline.Node, error) {
	enc, ok := deps[DepEncoders].(*feature.Encoders)
	if !ok || enc == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeMissingArtifact, "rank.similarity requires encoders")
	}
	strategy, err := rank.ParseStrategy(conv.ConfigGet(cfg, "strategy", rank.StrategyCosine))
	if err != nil {
		return nil, err
	}
	return &rank.RankNode{
		Strategy: strategy,
		Encoders: enc,
		K:        int(conv.ConfigGetInt64(cfg, "top_k", 0)),
	}, nil
}

// BuildThresholdNode 配置：min_score，默认 0.10。
func BuildThresholdNode(cfg map[string]any, _ pipeline.Deps) (pipeline.Node, error) {
	return &rerank.ThresholdNode{MinScore: conv.ConfigGetFloat64(cfg, "min_score", core.DefaultMinScore)}, nil
}

// BuildTopNNode 配置：n。
func BuildTopNNode(cfg map[string]any, _ pipeline.Deps) (pipeline.Node, error) {
	return &rerank.TopNNode{N: int(conv.ConfigGetInt64(cfg, "n", 0))}, nil
}

func BuildExplainNode(_ map[string]any, _ pipeline.Deps) (pipeline.Node, error) {
	return &explain.ExplainNode{}, nil
}
