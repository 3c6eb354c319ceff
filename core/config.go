package core

// 推荐链路的默认参数。
const (
	// DefaultTopK 是未指定时返回的推荐条数。
	DefaultTopK = 5

	// DefaultMinScore 是最低相似度阈值，低于该值的候选被丢弃。
	DefaultMinScore = 0.10

	// TextBoost 是文本段的放大系数。
	TextBoost = 10.0

	// MaxTextFeatures 是文本词表的最大词数。
	MaxTextFeatures = 500
)
