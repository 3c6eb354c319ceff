// Package explain 为每条推荐结果生成可读的推荐理由。
package explain

import (
	"strings"
	"unicode"

	"github.com/rushteam/unlox/core"
)

// Fallback 是没有任何规则命中时的理由。
const Fallback = "Matches your description."

// Generator 按固定顺序应用规则：业务类型、价格、地点、语言。
// 结果至少包含一条理由。Generator 无状态，可并发使用。
type Generator struct{}

// Explain 返回服务相对用户偏好的推荐理由。
func (Generator) Explain(svc *core.ServiceRecord, pref *core.UserPreference) []string {
	if pref == nil {
		pref = &core.UserPreference{}
	}
	var reasons []string

	if pref.HasBusinessType() && strings.EqualFold(strings.TrimSpace(svc.BusinessType), pref.NormalizedBusinessType()) {
		reasons = append(reasons, "Perfect match for "+titleCase(svc.BusinessType)+" businesses.")
	}

	// 价格规则总是生效：未指定预算按 medium 比较。
	tier := core.ParsePriceTier(string(svc.PriceTier))
	if !tier.Known() {
		tier = core.PriceMedium
	}
	if tier.Ordinal() <= pref.BudgetTier().Ordinal() {
		reasons = append(reasons, "Within your budget.")
	} else {
		reasons = append(reasons, "Slightly above budget ("+titleCase(string(tier))+").")
	}

	switch {
	case svc.IsRemote():
		reasons = append(reasons, "Available remotely.")
	case pref.HasLocation() && strings.EqualFold(strings.TrimSpace(svc.Location), pref.NormalizedLocation()):
		reasons = append(reasons, "Located in "+titleCase(svc.Location)+".")
	}

	if supportsLanguage(svc.Language, pref.LanguageSet()) {
		reasons = append(reasons, "Supports your preferred language.")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, Fallback)
	}
	return reasons
}

// supportsLanguage: 服务为 both 时匹配 english/hindi，其余要求服务语言在用户集合中。
func supportsLanguage(serviceLang string, user map[string]struct{}) bool {
	if len(user) == 0 {
		return false
	}
	lang := strings.ToLower(strings.TrimSpace(serviceLang))
	if lang == "" {
		return false
	}
	if _, ok := user[lang]; ok {
		return true
	}
	if lang != core.LanguageBoth {
		return false
	}
	_, english := user[core.LanguageEnglish]
	_, hindi := user[core.LanguageHindi]
	return english || hindi
}

// titleCase 把每个字母段的首字母大写，其余小写："e-commerce" -> "E-Commerce"。
func titleCase(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
