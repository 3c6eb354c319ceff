package feature

import (
	"fmt"

	"github.com/rushteam/unlox/core"
)

// Matrix 是目录的特征矩阵，第 i 行对应目录第 i 条服务。
type Matrix struct {
	Fingerprint string      `json:"fingerprint"`
	Width       int         `json:"width"`
	Rows        [][]float64 `json:"rows"`
}

// Len 返回行数。
func (m *Matrix) Len() int {
	return len(m.Rows)
}

// Row 返回第 i 行（共享底层数组，调用方不得修改）。
func (m *Matrix) Row(i int) []float64 {
	return m.Rows[i]
}

// Validate 校验矩阵与编码器布局、目录行数一致。
func (m *Matrix) Validate(schema *Schema, catalogLen int) error {
	if m == nil {
		return core.NewDomainError(core.ModuleFeature, core.ErrorCodeMissingArtifact, "feature matrix artifact is missing")
	}
	mismatch := func(format string, args ...any) error {
		return core.NewDomainError(core.ModuleFeature, core.ErrorCodeSchemaMismatch, fmt.Sprintf(format, args...))
	}
	if fp := schema.Fingerprint(); m.Fingerprint != fp {
		return mismatch("feature matrix fingerprint %.12s does not match encoders %.12s", m.Fingerprint, fp)
	}
	if m.Width != schema.Width() {
		return mismatch("feature matrix width %d, encoders produce %d", m.Width, schema.Width())
	}
	if len(m.Rows) != catalogLen {
		return mismatch("feature matrix has %d rows, catalog has %d", len(m.Rows), catalogLen)
	}
	for i, row := range m.Rows {
		if len(row) != m.Width {
			return mismatch("feature matrix row %d has width %d, want %d", i, len(row), m.Width)
		}
	}
	return nil
}

// Fit 是离线拟合任务：在目录上拟合编码器并生成特征矩阵。
func Fit(catalog []core.ServiceRecord) (*Encoders, *Matrix) {
	businessTypes := make([]string, len(catalog))
	locations := make([]string, len(catalog))
	docs := make([]string, len(catalog))
	for i := range catalog {
		businessTypes[i] = catalog[i].BusinessType
		locations[i] = catalog[i].Location
		docs[i] = catalog[i].Description
	}

	enc := &Encoders{
		Version:      SchemaVersion,
		BusinessType: FitOneHot("business_type", businessTypes),
		Location:     FitOneHot("location", locations),
		Text:         FitTFIDF(docs, core.MaxTextFeatures),
		Boost:        core.TextBoost,
	}

	rows := make([][]float64, len(catalog))
	for i := range catalog {
		rows[i] = enc.EncodeService(&catalog[i])
	}
	return enc, &Matrix{
		Fingerprint: enc.Schema().Fingerprint(),
		Width:       enc.Width(),
		Rows:        rows,
	}
}
