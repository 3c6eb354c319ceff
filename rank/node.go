package rank

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rushteam/unlox/core"
	"github.com/rushteam/unlox/feature"
	"github.com/rushteam/unlox/pipeline"
	"github.com/rushteam/unlox/pkg/utils"
)

// RankNode 用 Strategy 对候选打分并截取前 K 个。
//   - 用户向量仅在有候选时才编码
//   - 写入 item.Score 与 labels：rank_strategy
//   - K 为 0 时使用 rctx.TopK
type RankNode struct {
	Strategy Strategy
	Encoders *feature.Encoders
	K        int
}

func (n *RankNode) Name() string        { return "rank.similarity" }
func (n *RankNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *RankNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}
	if n.Strategy == nil || n.Encoders == nil {
		return nil, fmt.Errorf("rank node is not configured")
	}

	byIndex := make(map[int]*core.Item, len(items))
	cands := make([]Candidate, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if len(it.Vector) != n.Encoders.Width() {
			return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeSchemaMismatch,
				"candidate "+strconv.Itoa(it.Index)+" vector width does not match encoders")
		}
		byIndex[it.Index] = it
		cands = append(cands, Candidate{Index: it.Index, Vector: it.Vector})
	}

	k := n.K
	if k == 0 {
		k = rctx.TopK
	}
	user := n.Encoders.EncodeUser(rctx.Pref())
	ranked := n.Strategy.Rank(user, cands, k)

	out := make([]*core.Item, 0, len(ranked))
	for _, s := range ranked {
		it := byIndex[s.Index]
		it.Score = s.Score
		it.PutLabel("rank_strategy", utils.Label{Value: n.Strategy.Name(), Source: utils.SourceRank})
		out = append(out, it)
	}
	return out, nil
}
