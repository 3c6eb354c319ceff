package rank

import "math"

// Cosine 返回余弦相似度；任一向量范数为 0 时返回 0。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Euclidean 返回欧氏距离。
func Euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// DistanceScore 把距离映射为 (0,1] 的相似度：1/(1+d)。
func DistanceScore(d float64) float64 {
	return 1 / (1 + d)
}
