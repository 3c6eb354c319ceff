package feature

import (
	"github.com/rushteam/unlox/core"
)

// Encoders 是离线拟合得到的编码器组合：业务类型与地点两个独热编码器加文本向量器。
// 拟合后只读，可被并发请求共享。
type Encoders struct {
	Version      string           `json:"version"`
	BusinessType *OneHotEncoder   `json:"business_type"`
	Location     *OneHotEncoder   `json:"location"`
	Text         *TFIDFVectorizer `json:"text"`
	Boost        float64          `json:"boost"`
}

// Validate 检查产物是否完整。
func (e *Encoders) Validate() error {
	if e == nil || e.BusinessType == nil || e.Location == nil || e.Text == nil {
		return core.NewDomainError(core.ModuleFeature, core.ErrorCodeMissingArtifact, "encoders artifact is incomplete")
	}
	if len(e.Text.IDF) != len(e.Text.Vocabulary) {
		return core.NewDomainError(core.ModuleFeature, core.ErrorCodeSchemaMismatch, "text vocabulary and idf lengths differ")
	}
	return nil
}

// Schema 返回编码器对应的特征布局。
func (e *Encoders) Schema() *Schema {
	cols := make([]string, 0, e.Width())
	cols = append(cols, manualColumns[:]...)
	cols = append(cols, e.BusinessType.ColumnNames()...)
	cols = append(cols, e.Location.ColumnNames()...)
	cols = append(cols, e.Text.ColumnNames()...)
	return &Schema{
		Version:       e.Version,
		Columns:       cols,
		ManualWidth:   ManualWidth,
		BusinessWidth: e.BusinessType.Width(),
		LocationWidth: e.Location.Width(),
		TextWidth:     e.Text.Width(),
		Boost:         e.Boost,
		IDF:           e.Text.IDF,
	}
}

// Width 返回特征向量宽度。
func (e *Encoders) Width() int {
	return ManualWidth + e.BusinessType.Width() + e.Location.Width() + e.Text.Width()
}

// EncodeService 编码一行目录服务。
func (e *Encoders) EncodeService(svc *core.ServiceRecord) []float64 {
	return e.assemble(ServiceManual(svc), svc.BusinessType, svc.Location, svc.Description)
}

// EncodeUser 编码用户偏好；纯函数，相同输入得到逐位相同的向量。
// 缺失的业务类型或地点得到全零块，空描述得到全零文本段。
func (e *Encoders) EncodeUser(pref *core.UserPreference) []float64 {
	if pref == nil {
		pref = &core.UserPreference{}
	}
	return e.assemble(UserManual(pref), pref.BusinessType, pref.Location, pref.Description)
}

func (e *Encoders) assemble(m ManualFeatures, businessType, location, text string) []float64 {
	vec := make([]float64, e.Width())
	m.Vector(vec[:ManualWidth])
	off := ManualWidth
	e.BusinessType.EncodeInto(vec[off:off+e.BusinessType.Width()], businessType)
	off += e.BusinessType.Width()
	e.Location.EncodeInto(vec[off:off+e.Location.Width()], location)
	off += e.Location.Width()
	e.Text.TransformInto(vec[off:], text, e.Boost)
	return vec
}
