package feature

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// SchemaVersion 是特征布局版本；布局规则变化时递增，旧产物会因指纹不一致被拒绝。
const SchemaVersion = "v1"

// Schema 描述特征向量布局，是编码器产物与特征矩阵产物之间的契约。
type Schema struct {
	Version       string    `json:"version"`
	Columns       []string  `json:"columns"`
	ManualWidth   int       `json:"manual_width"`
	BusinessWidth int       `json:"business_width"`
	LocationWidth int       `json:"location_width"`
	TextWidth     int       `json:"text_width"`
	Boost         float64   `json:"boost"`
	IDF           []float64 `json:"idf"`
}

// Width 返回向量总宽度。
func (s *Schema) Width() int {
	return s.ManualWidth + s.BusinessWidth + s.LocationWidth + s.TextWidth
}

// Fingerprint 返回布局的 sha256 摘要（十六进制），同一份拟合结果的指纹恒定。
// 字符串按长度前缀写入，浮点按 IEEE-754 位模式写入。
func (s *Schema) Fingerprint() string {
	var buf []byte
	putString := func(v string) {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(v)))
		buf = append(buf, v...)
	}
	putInt := func(v int) {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	putFloat := func(v float64) {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}

	putString(s.Version)
	putInt(len(s.Columns))
	for _, c := range s.Columns {
		putString(c)
	}
	putInt(s.ManualWidth)
	putInt(s.BusinessWidth)
	putInt(s.LocationWidth)
	putInt(s.TextWidth)
	putFloat(s.Boost)
	putInt(len(s.IDF))
	for _, v := range s.IDF {
		putFloat(v)
	}

	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
