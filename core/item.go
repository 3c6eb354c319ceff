package core

import "github.com/rushteam/unlox/pkg/utils"

// Item 是推荐链路中的统一承载结构：一行目录服务及其在链路中累积的分数、理由与标签。
// Index 是服务在目录中的行号，同时也是特征矩阵中对应行的下标。
type Item struct {
	Index        int
	Service      *ServiceRecord
	Vector       []float64
	Score        float64
	Explanations []string
	Labels       map[string]utils.Label
}

// NewItem 为目录第 index 行创建 Item。
func NewItem(index int, svc *ServiceRecord, vec []float64) *Item {
	return &Item{
		Index:   index,
		Service: svc,
		Vector:  vec,
		Labels:  make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// GetLabel 读取 Label。
func (it *Item) GetLabel(key string) (utils.Label, bool) {
	lbl, ok := it.Labels[key]
	return lbl, ok
}
