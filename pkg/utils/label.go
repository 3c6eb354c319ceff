// Package utils 提供链路内部通用的小工具。
package utils

import "strings"

// 标签来源：记录是哪个阶段写入的。
const (
	SourceFilter  = "filter"
	SourceRank    = "rank"
	SourceRerank  = "rerank"
	SourceExplain = "explain"
	SourceRequest = "request"
)

// Label 随 Item 透传，用于观测与调试：谁在什么阶段留下了什么。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"`
}

// MergeLabel 合并同名 Label：Value 以 '|' 累积，Source 以 ',' 累积并去重。
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}
	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "" || containsPart(existing.Source, incoming.Source):
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}

func containsPart(list, s string) bool {
	for _, p := range strings.Split(list, ",") {
		if p == s {
			return true
		}
	}
	return false
}
