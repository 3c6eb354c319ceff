package rank

import "sort"

// NeighborStrategy 在候选集上做暴力欧氏近邻检索，取 min(k, 候选数) 个最近邻，
// 相似度为 1/(1+距离)。索引随请求构建、随请求丢弃。
type NeighborStrategy struct{}

func (NeighborStrategy) Name() string { return StrategyNeighbors }

func (NeighborStrategy) Rank(user []float64, cands []Candidate, k int) []Scored {
	idx := newNeighborIndex(cands)
	return idx.query(user, k)
}

// neighborIndex 是只覆盖本次候选的暴力近邻索引。
type neighborIndex struct {
	cands []Candidate
}

func newNeighborIndex(cands []Candidate) *neighborIndex {
	return &neighborIndex{cands: cands}
}

func (n *neighborIndex) query(q []float64, k int) []Scored {
	out := make([]Scored, len(n.cands))
	for i, c := range n.cands {
		d := Euclidean(q, c.Vector)
		out[i] = Scored{Index: c.Index, Distance: d, Score: DistanceScore(d)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Index < out[j].Index
	})
	return out[:limit(k, len(out))]
}
