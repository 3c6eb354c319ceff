package core

import (
	"fmt"
	"strings"

	"github.com/rushteam/unlox/pkg/conv"
)

// 用户偏好记录的规范字段名（展示层传入的 map 必须使用这些 key）。
const (
	FieldBusinessType = "business_type"
	FieldPriceTier    = "price_tier"
	FieldLanguages    = "languages"
	FieldLocation     = "location"
	FieldDescription  = "description"
)

// UserPreference 是一次请求的用户偏好，按需编码，不做持久化。
//
// 每个字段"存在且非空"才构成约束；缺失不是错误。
// Description 通常是用户正在浏览的服务描述，作为语义查询。
type UserPreference struct {
	BusinessType string    `json:"business_type,omitempty"`
	PriceTier    PriceTier `json:"price_tier,omitempty"`
	Languages    []string  `json:"languages,omitempty"`
	Location     string    `json:"location,omitempty"`
	Description  string    `json:"description,omitempty"`
}

// HasBusinessType 报告是否指定了业务类型。
func (p *UserPreference) HasBusinessType() bool {
	return strings.TrimSpace(p.BusinessType) != ""
}

// HasPriceTier 报告是否指定了预算档位。
func (p *UserPreference) HasPriceTier() bool {
	return strings.TrimSpace(string(p.PriceTier)) != ""
}

// HasLocation 报告是否指定了地点。
func (p *UserPreference) HasLocation() bool {
	return strings.TrimSpace(p.Location) != ""
}

// BudgetTier 返回规范化后的预算档位；未指定时为 medium。
func (p *UserPreference) BudgetTier() PriceTier {
	if !p.HasPriceTier() {
		return PriceMedium
	}
	return ParsePriceTier(string(p.PriceTier))
}

// NormalizedLocation 返回小写、去空白的地点。
func (p *UserPreference) NormalizedLocation() string {
	return strings.ToLower(strings.TrimSpace(p.Location))
}

// NormalizedBusinessType 返回小写、去空白的业务类型。
func (p *UserPreference) NormalizedBusinessType() string {
	return strings.ToLower(strings.TrimSpace(p.BusinessType))
}

// LanguageSet 把语言列表归一化为小写集合。
func (p *UserPreference) LanguageSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Languages))
	for _, l := range p.Languages {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		set[l] = struct{}{}
	}
	return set
}

// ParseUserPreference 从展示层传入的原始记录构建 UserPreference。
//
// 字段类型不符（例如 location 是数字、languages 列表中混入非字符串）时
// 返回 INVALID_INPUT 领域错误，不做静默修复。未知 key 被忽略，nil 视为缺失。
func ParseUserPreference(record map[string]any) (*UserPreference, error) {
	pref := &UserPreference{}
	if record == nil {
		return pref, nil
	}

	strField := func(key string) (string, error) {
		v, ok := record[key]
		if !ok || v == nil {
			return "", nil
		}
		s, ok := conv.ToString(v)
		if !ok {
			return "", malformed(key, fmt.Errorf("expected string, got %T", v))
		}
		return s, nil
	}

	var err error
	if pref.BusinessType, err = strField(FieldBusinessType); err != nil {
		return nil, err
	}
	tier, err := strField(FieldPriceTier)
	if err != nil {
		return nil, err
	}
	pref.PriceTier = PriceTier(tier)
	if pref.Location, err = strField(FieldLocation); err != nil {
		return nil, err
	}
	if pref.Description, err = strField(FieldDescription); err != nil {
		return nil, err
	}
	langs, err := conv.ToStringList(record[FieldLanguages])
	if err != nil {
		return nil, malformed(FieldLanguages, err)
	}
	pref.Languages = langs

	return pref, nil
}

func malformed(field string, err error) error {
	return WrapDomainError(ModuleInput, ErrorCodeInvalidInput, "malformed user record field "+field, err)
}
