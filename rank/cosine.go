package rank

import "sort"

// CosineStrategy 对每个候选计算与用户向量的余弦相似度，降序取前 k。
type CosineStrategy struct{}

func (CosineStrategy) Name() string { return StrategyCosine }

func (CosineStrategy) Rank(user []float64, cands []Candidate, k int) []Scored {
	out := make([]Scored, len(cands))
	for i, c := range cands {
		out[i] = Scored{Index: c.Index, Score: Cosine(user, c.Vector)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Index < out[j].Index
	})
	return out[:limit(k, len(out))]
}
