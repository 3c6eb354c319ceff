package filter

import (
	"context"
	"strings"

	"github.com/rushteam/unlox/core"
)

// BusinessTypeFilter 剔除业务类型与用户不同的服务（大小写不敏感的精确匹配）。
type BusinessTypeFilter struct{}

func (f *BusinessTypeFilter) Name() string { return "filter.business_type" }

func (f *BusinessTypeFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	pref := rctx.Pref()
	if !pref.HasBusinessType() {
		return false, nil
	}
	return normalize(item.Service.BusinessType) != pref.NormalizedBusinessType(), nil
}

// BudgetFilter 剔除价格档位高于用户预算的服务。
// 未识别的档位（服务或用户一侧）都按 medium 处理。
type BudgetFilter struct{}

func (f *BudgetFilter) Name() string { return "filter.budget" }

func (f *BudgetFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	pref := rctx.Pref()
	if !pref.HasPriceTier() {
		return false, nil
	}
	service := core.ParsePriceTier(string(item.Service.PriceTier)).Ordinal()
	return service > pref.BudgetTier().Ordinal(), nil
}

// LocationFilter 剔除地点与用户不同的服务。
// 字面匹配：用户指定城市时远程服务同样被剔除。
type LocationFilter struct{}

func (f *LocationFilter) Name() string { return "filter.location" }

func (f *LocationFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	pref := rctx.Pref()
	if !pref.HasLocation() {
		return false, nil
	}
	return normalize(item.Service.Location) != pref.NormalizedLocation(), nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
