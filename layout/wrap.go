package layout

import (
	"math"
	"strings"
	"unicode"
)

// Wrap 使用贪心算法将文本折成不超过 maxWidth 的行，measure 返回片段宽度（mm）。
// 优先在空白处断行，单个词超宽时在词内拆分；显式换行总会开始新行。
// 行首行尾的空白会被去掉，其余字符原样保留。
func Wrap(content string, maxWidth float64, measure func(string) float64) []string {
	limit := maxWidth
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var lines []string
	var builder strings.Builder
	current := 0.0

	emit := func() {
		lines = append(lines, strings.TrimRightFunc(builder.String(), unicode.IsSpace))
		builder.Reset()
		current = 0
	}
	appendToken := func(token string, w float64) {
		builder.WriteString(token)
		current += w
	}

	for _, token := range tokenize(content) {
		if token == "\n" {
			emit()
			continue
		}
		isSpace := strings.TrimSpace(token) == ""
		if isSpace {
			// 行首空白没有意义，行尾空白在 emit 时去掉
			if builder.Len() > 0 {
				appendToken(token, measure(token))
			}
			continue
		}

		w := measure(token)
		if current > 0 && current+w > limit && strings.TrimSpace(builder.String()) != "" {
			emit()
		}
		if w <= limit {
			appendToken(token, w)
			continue
		}
		for _, chunk := range splitByWidth(token, limit, measure) {
			cw := measure(chunk)
			if current > 0 && current+cw > limit {
				emit()
			}
			appendToken(chunk, cw)
		}
	}
	emit()
	return lines
}

// tokenize 将文本切成连续的空白/非空白片段，换行单独成为一个片段。
func tokenize(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitByWidth(token string, limit float64, measure func(string) float64) []string {
	var parts []string
	var current []rune
	for _, r := range token {
		current = append(current, r)
		if len(current) > 1 && measure(string(current)) > limit {
			parts = append(parts, string(current[:len(current)-1]))
			current = []rune{r}
		}
	}
	if len(current) > 0 {
		parts = append(parts, string(current))
	}
	return parts
}
