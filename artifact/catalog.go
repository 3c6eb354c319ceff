package artifact

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rushteam/unlox/core"
)

// 目录 CSV 的列名。
const (
	ColServiceID    = "Service_ID"
	ColServiceName  = "Service_Name"
	ColDescription  = "Description"
	ColBusinessType = "Target_Business_Type"
	ColPriceTier    = "Price_Category"
	ColLocation     = "Location_Area"
	ColLanguage     = "Language_Support"
)

var requiredColumns = []string{
	ColServiceID, ColServiceName, ColDescription, ColBusinessType,
	ColPriceTier, ColLocation, ColLanguage,
}

// ReadCatalogCSV 读取并清洗目录 CSV 文件。
func ReadCatalogCSV(path string) ([]core.ServiceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, core.WrapDomainError(core.ModuleArtifact, core.ErrorCodeMissingArtifact, "catalog file not found: "+path, err)
		}
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ParseCatalogCSV(f)
}

// ParseCatalogCSV 从 reader 解析目录。按表头定位列，多余的列被忽略。
func ParseCatalogCSV(r io.Reader) ([]core.ServiceRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleArtifact, core.ErrorCodeMissingArtifact, "catalog has no header", err)
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := pos[col]; !ok {
			return nil, core.NewDomainError(core.ModuleArtifact, core.ErrorCodeSchemaMismatch, "catalog is missing column "+col)
		}
	}
	cr.FieldsPerRecord = len(header)

	var records []core.ServiceRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", line, err)
		}
		records = append(records, core.ServiceRecord{
			ServiceID:    row[pos[ColServiceID]],
			Name:         row[pos[ColServiceName]],
			Description:  row[pos[ColDescription]],
			BusinessType: row[pos[ColBusinessType]],
			PriceTier:    core.PriceTier(row[pos[ColPriceTier]]),
			Location:     row[pos[ColLocation]],
			Language:     row[pos[ColLanguage]],
		})
	}
	return CleanCatalog(records), nil
}

// CleanCatalog 规范化目录：类别列去空白并转小写，描述去空白，完全重复的行只保留第一条。
func CleanCatalog(records []core.ServiceRecord) []core.ServiceRecord {
	seen := make(map[core.ServiceRecord]struct{}, len(records))
	out := make([]core.ServiceRecord, 0, len(records))
	for _, r := range records {
		r.BusinessType = lowerTrim(r.BusinessType)
		r.PriceTier = core.ParsePriceTier(string(r.PriceTier))
		r.Location = lowerTrim(r.Location)
		r.Language = lowerTrim(r.Language)
		r.Description = strings.TrimSpace(r.Description)
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
