package feature

import (
	"sort"
	"strings"
)

// OneHotEncoder 独热编码：把一个类别字段转换为定长二进制块，每个已知类别占一维。
//
// 类别在 Fit 时按字典序排序去重并固定下来；编码时未见过的值（含空值）
// 得到全零块，不报错。
type OneHotEncoder struct {
	Field      string   `json:"field"`
	Categories []string `json:"categories"`
}

// FitOneHot 在目录的某一列上拟合独热编码器。值会先去空白、转小写，空值不计入类别。
func FitOneHot(field string, values []string) *OneHotEncoder {
	seen := make(map[string]struct{}, len(values))
	cats := make([]string, 0, len(values))
	for _, v := range values {
		v = normalizeCategory(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		cats = append(cats, v)
	}
	sort.Strings(cats)
	return &OneHotEncoder{Field: field, Categories: cats}
}

// Width 返回编码块宽度（类别数）。
func (e *OneHotEncoder) Width() int {
	return len(e.Categories)
}

// Index 返回值对应的维度；未知值返回 -1。
func (e *OneHotEncoder) Index(value string) int {
	value = normalizeCategory(value)
	if value == "" {
		return -1
	}
	i := sort.SearchStrings(e.Categories, value)
	if i < len(e.Categories) && e.Categories[i] == value {
		return i
	}
	return -1
}

// Encode 返回独热块。
func (e *OneHotEncoder) Encode(value string) []float64 {
	out := make([]float64, e.Width())
	e.EncodeInto(out, value)
	return out
}

// EncodeInto 写入 dst（长度须为 Width），dst 需预先清零。
func (e *OneHotEncoder) EncodeInto(dst []float64, value string) {
	if i := e.Index(value); i >= 0 {
		dst[i] = 1.0
	}
}

// ColumnNames 返回 "field=category" 形式的列名。
func (e *OneHotEncoder) ColumnNames() []string {
	names := make([]string, len(e.Categories))
	for i, c := range e.Categories {
		names[i] = e.Field + "=" + c
	}
	return names
}

func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
