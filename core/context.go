package core

import "github.com/rushteam/unlox/pkg/utils"

// RecommendContext 承载一次请求的用户偏好与参数，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// Preference 是本次请求的用户偏好，nil 视为无任何约束。
	Preference *UserPreference

	// TopK 是排序阶段保留的候选数量；<= 0 表示全部保留。
	TopK int

	// Strict 为 false 时仍按严格过滤执行，仅记录日志。
	Strict bool

	// Labels 是请求级标签，例如排序策略名。
	Labels map[string]utils.Label

	// Params 请求级参数，供表达式过滤等扩展读取。
	Params map[string]any
}

// NewRecommendContext 以默认参数创建请求上下文。
func NewRecommendContext(pref *UserPreference, topK int) *RecommendContext {
	if pref == nil {
		pref = &UserPreference{}
	}
	return &RecommendContext{
		Preference: pref,
		TopK:       topK,
		Strict:     true,
		Labels:     make(map[string]utils.Label),
		Params:     make(map[string]any),
	}
}

// Pref 返回非 nil 的用户偏好。
func (rctx *RecommendContext) Pref() *UserPreference {
	if rctx == nil || rctx.Preference == nil {
		return &UserPreference{}
	}
	return rctx.Preference
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
