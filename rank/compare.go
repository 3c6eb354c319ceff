package rank

// Comparison 是两种策略在同一候选集上的结果对比。
type Comparison struct {
	Cosine    []Scored
	Neighbors []Scored
	// Overlap 是两边都出现的目录行号，按余弦结果中的顺序排列。
	Overlap []int
}

// Jaccard 返回两边结果集合的 Jaccard 相似度；两边都为空时为 1。
func (c *Comparison) Jaccard() float64 {
	union := len(c.Cosine) + len(c.Neighbors) - len(c.Overlap)
	if union == 0 {
		return 1
	}
	return float64(len(c.Overlap)) / float64(union)
}

// Compare 在同一候选集上分别运行余弦与近邻策略。
func Compare(user []float64, cands []Candidate, k int) *Comparison {
	c := &Comparison{
		Cosine:    CosineStrategy{}.Rank(user, cands, k),
		Neighbors: NeighborStrategy{}.Rank(user, cands, k),
	}
	seen := make(map[int]struct{}, len(c.Neighbors))
	for _, s := range c.Neighbors {
		seen[s.Index] = struct{}{}
	}
	for _, s := range c.Cosine {
		if _, ok := seen[s.Index]; ok {
			c.Overlap = append(c.Overlap, s.Index)
		}
	}
	return c
}
