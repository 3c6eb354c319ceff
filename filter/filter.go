// Package filter 实现资格过滤：在排序前用硬性类别约束剔除候选服务。
//
// 各过滤器只在用户指定了对应偏好时生效；未指定的维度不构成约束。
package filter

import (
	"context"

	"github.com/rushteam/unlox/core"
)

// Filter 是过滤器的抽象接口，用于判断一个 Item 是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}

// Defaults 返回默认的三条硬性过滤：业务类型、预算上限、地点。
func Defaults() []Filter {
	return []Filter{
		&BusinessTypeFilter{},
		&BudgetFilter{},
		&LocationFilter{},
	}
}

// Eligible 返回满足全部默认过滤条件的目录行号，保持目录顺序。
func Eligible(catalog []core.ServiceRecord, pref *core.UserPreference) []int {
	rctx := core.NewRecommendContext(pref, 0)
	filters := Defaults()
	out := make([]int, 0, len(catalog))
	for i := range catalog {
		item := &core.Item{Index: i, Service: &catalog[i]}
		keep := true
		for _, f := range filters {
			// 默认过滤器不会返回错误
			drop, _ := f.ShouldFilter(context.Background(), rctx, item)
			if drop {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, i)
		}
	}
	return out
}
