package feature

import (
	"strings"

	"github.com/rushteam/unlox/core"
)

// ManualWidth 是手工特征段的宽度。
const ManualWidth = 5

// 手工特征列，顺序即向量中的位置。
var manualColumns = [ManualWidth]string{
	"price_score",
	"lang_english",
	"lang_hindi",
	"lang_regional",
	"is_remote",
}

// ManualFeatures 是价格、语言与远程标记组成的手工特征段。
type ManualFeatures struct {
	PriceScore float64
	English    bool
	Hindi      bool
	Regional   bool
	Remote     bool
}

// ServiceManual 从目录行提取手工特征。
// 语言为 english 或 both 时置 english，hindi 或 both 时置 hindi，regional 置 regional。
func ServiceManual(svc *core.ServiceRecord) ManualFeatures {
	lang := strings.ToLower(strings.TrimSpace(svc.Language))
	return ManualFeatures{
		PriceScore: core.ParsePriceTier(string(svc.PriceTier)).Score(),
		English:    lang == core.LanguageEnglish || lang == core.LanguageBoth,
		Hindi:      lang == core.LanguageHindi || lang == core.LanguageBoth,
		Regional:   lang == core.LanguageRegional,
		Remote:     normalizeCategory(svc.Location) == core.RemoteLocation,
	}
}

// UserManual 从用户偏好提取手工特征。缺失档位按 medium。
func UserManual(pref *core.UserPreference) ManualFeatures {
	langs := pref.LanguageSet()
	_, english := langs[core.LanguageEnglish]
	_, hindi := langs[core.LanguageHindi]
	_, regional := langs[core.LanguageRegional]
	_, both := langs[core.LanguageBoth]
	return ManualFeatures{
		PriceScore: pref.BudgetTier().Score(),
		English:    english || both,
		Hindi:      hindi || both,
		Regional:   regional,
		Remote:     pref.NormalizedLocation() == core.RemoteLocation,
	}
}

// Vector 写入 dst[0:ManualWidth]。
func (m ManualFeatures) Vector(dst []float64) {
	dst[0] = m.PriceScore
	dst[1] = flag(m.English)
	dst[2] = flag(m.Hindi)
	dst[3] = flag(m.Regional)
	dst[4] = flag(m.Remote)
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
