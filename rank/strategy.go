// Package rank 实现相似度排序：把用户向量与候选服务向量比较并输出有序的前 K 个。
package rank

import (
	"fmt"
	"strings"
)

// Candidate 是一条待排序候选：目录行号与其特征向量。
type Candidate struct {
	Index  int
	Vector []float64
}

// Scored 是排序结果。Distance 仅近邻策略填写。
type Scored struct {
	Index    int
	Score    float64
	Distance float64
}

// Strategy 是排序策略。
//
// Rank 返回至多 k 条结果，按 Score 降序，同分按目录顺序；k <= 0 表示返回全部。
// 候选为空时返回空结果。实现必须是无状态的，可被并发请求共享。
type Strategy interface {
	Name() string
	Rank(user []float64, cands []Candidate, k int) []Scored
}

// 策略名
const (
	StrategyCosine    = "cosine"
	StrategyNeighbors = "knn"
)

// ParseStrategy 按名称选择策略：cosine（默认）或 knn / euclidean。
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyCosine:
		return CosineStrategy{}, nil
	case StrategyNeighbors, "euclidean", "neighbors":
		return NeighborStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown ranking strategy %q (supported: cosine, knn)", name)
	}
}

func limit(k, n int) int {
	if k <= 0 || k > n {
		return n
	}
	return k
}
