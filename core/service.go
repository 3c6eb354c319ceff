package core

import "strings"

// RemoteLocation 是远程服务的地点哨兵值。
const RemoteLocation = "remote"

// 语言支持取值
const (
	LanguageEnglish  = "english"
	LanguageHindi    = "hindi"
	LanguageRegional = "regional"
	LanguageBoth     = "both"
)

// PriceTier 是有序价格档位：low < medium < high < premium。
type PriceTier string

const (
	PriceLow     PriceTier = "low"
	PriceMedium  PriceTier = "medium"
	PriceHigh    PriceTier = "high"
	PricePremium PriceTier = "premium"
)

var priceOrdinals = map[PriceTier]int{
	PriceLow:     1,
	PriceMedium:  2,
	PriceHigh:    3,
	PricePremium: 4,
}

// ParsePriceTier 大小写不敏感地解析价格档位，首尾空白会被去掉。
// 未识别的值原样保留（小写），由 Ordinal/Score 负责回退到 medium。
func ParsePriceTier(s string) PriceTier {
	return PriceTier(strings.ToLower(strings.TrimSpace(s)))
}

// Known 报告档位是否在有序刻度上。
func (p PriceTier) Known() bool {
	_, ok := priceOrdinals[p]
	return ok
}

// Ordinal 返回 1..4 的序数；未识别或缺失的档位按 medium(2) 处理。
func (p PriceTier) Ordinal() int {
	if v, ok := priceOrdinals[p]; ok {
		return v
	}
	return priceOrdinals[PriceMedium]
}

// Score 返回归一化价格分：0.25 / 0.50 / 0.75 / 1.00，未识别为 0.50。
func (p PriceTier) Score() float64 {
	return float64(p.Ordinal()) / 4.0
}

// ServiceRecord 是目录中的一行服务。
// 加载后不可变；行号（目录中的下标）即稳定标识，与特征矩阵的行一一对应。
type ServiceRecord struct {
	ServiceID    string    `json:"service_id"`
	Name         string    `json:"service_name"`
	Description  string    `json:"description"`
	BusinessType string    `json:"business_type"`
	PriceTier    PriceTier `json:"price_tier"`
	Location     string    `json:"location"`
	Language     string    `json:"language_support"`
}

// IsRemote 报告服务是否为远程服务。
func (s *ServiceRecord) IsRemote() bool {
	return strings.EqualFold(s.Location, RemoteLocation)
}
