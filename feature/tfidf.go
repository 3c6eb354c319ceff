package feature

import (
	"math"
	"sort"
)

// TFIDFVectorizer 把描述文本转换为定长 TF-IDF 向量。
//
// 词表按字典序排列，超出 MaxFeatures 时按语料总词频保留高频词（同频按字典序）。
// IDF 为平滑形式 ln((1+n)/(1+df))+1；Transform 使用原始词频乘 IDF 后做 L2 归一化。
type TFIDFVectorizer struct {
	Vocabulary  []string  `json:"vocabulary"`
	IDF         []float64 `json:"idf"`
	MaxFeatures int       `json:"max_features"`
}

// FitTFIDF 在语料上拟合词表与 IDF。maxFeatures <= 0 表示不限制词表大小。
func FitTFIDF(docs []string, maxFeatures int) *TFIDFVectorizer {
	termFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Analyze(doc) {
			termFreq[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	vocab := make([]string, 0, len(termFreq))
	for term := range termFreq {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	if maxFeatures > 0 && len(vocab) > maxFeatures {
		sort.SliceStable(vocab, func(i, j int) bool {
			return termFreq[vocab[i]] > termFreq[vocab[j]]
		})
		vocab = vocab[:maxFeatures]
		sort.Strings(vocab)
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	return &TFIDFVectorizer{Vocabulary: vocab, IDF: idf, MaxFeatures: maxFeatures}
}

// Width 返回词表大小。
func (v *TFIDFVectorizer) Width() int {
	return len(v.Vocabulary)
}

func (v *TFIDFVectorizer) index(term string) int {
	i := sort.SearchStrings(v.Vocabulary, term)
	if i < len(v.Vocabulary) && v.Vocabulary[i] == term {
		return i
	}
	return -1
}

// Transform 返回 L2 归一化的 TF-IDF 向量；没有任何词命中词表时为全零向量。
func (v *TFIDFVectorizer) Transform(text string) []float64 {
	out := make([]float64, v.Width())
	v.TransformInto(out, text, 1.0)
	return out
}

// TransformInto 把归一化向量乘以 scale 后写入 dst（长度须为 Width，需预先清零）。
func (v *TFIDFVectorizer) TransformInto(dst []float64, text string, scale float64) {
	hit := false
	for _, tok := range Analyze(text) {
		if i := v.index(tok); i >= 0 {
			dst[i]++
			hit = true
		}
	}
	if !hit {
		return
	}
	var sum float64
	for i := range dst {
		dst[i] *= v.IDF[i]
		sum += dst[i] * dst[i]
	}
	norm := math.Sqrt(sum)
	for i := range dst {
		dst[i] = dst[i] / norm * scale
	}
}

// ColumnNames 返回 "text=term" 形式的列名。
func (v *TFIDFVectorizer) ColumnNames() []string {
	names := make([]string, len(v.Vocabulary))
	for i, t := range v.Vocabulary {
		names[i] = "text=" + t
	}
	return names
}
