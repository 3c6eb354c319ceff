package feature

import (
	"strings"
	"unicode"
)

// Tokenize 把文本切分为小写词元：连续的字母/数字/下划线，长度至少 2 个字符。
// 其余字符（标点、空白、连字符）都是分隔符。
func Tokenize(text string) []string {
	var (
		tokens []string
		cur    strings.Builder
		n      int
	)
	flush := func() {
		if n >= 2 {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
		n = 0
	}
	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			cur.WriteRune(r)
			n++
			continue
		}
		flush()
	}
	flush()
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// Analyze 分词并去掉英文停用词。
func Analyze(text string) []string {
	tokens := Tokenize(text)
	out := tokens[:0]
	for _, t := range tokens {
		if _, stop := englishStopWords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}
