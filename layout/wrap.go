package layout

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MeasureFunc 返回一段文本在当前字体与字号下的宽度（mm）。
type MeasureFunc func(s string) float64

// Wrap 使用贪心算法折行：显式换行各自独立折行；在宽度不超过 limit 的前提下尽量多放单词。
// 单个宽于 limit 的单词独占一行且不拆分，可能溢出文本框。
// limit <= 0 表示不限宽。
func Wrap(content string, limit float64, measure MeasureFunc) []TextLine {
	if limit <= 0 {
		limit = math.MaxFloat64
	}
	content = norm.NFC.String(content)
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.TrimRight(content, "\n")
	if strings.TrimSpace(content) == "" {
		return nil
	}

	var lines []TextLine
	emit := func(s string) {
		lines = append(lines, TextLine{Content: s, Width: measure(s)})
	}

	for _, paragraph := range strings.Split(content, "\n") {
		current := ""
		pendingSpace := ""
		for _, token := range tokenize(paragraph) {
			if isSpaceToken(token) {
				if current != "" {
					pendingSpace += token
				}
				continue
			}
			if current == "" {
				current = token
				pendingSpace = ""
				continue
			}
			candidate := current + pendingSpace + token
			if measure(candidate) <= limit {
				current = candidate
			} else {
				emit(current)
				current = token
			}
			pendingSpace = ""
		}
		// 空段落保留为空行
		emit(current)
	}
	return lines
}

// BlockHeight 返回 n 行文本在给定字号（pt）下的总高度（mm）。
func BlockHeight(n int, fontSizePt float64) float64 {
	return float64(n) * LineHeight(fontSizePt)
}

// tokenize 把一行文本切成交替的单词与空白片段。
func tokenize(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	for _, r := range s {
		isSpace := unicode.IsSpace(r)
		if builder.Len() > 0 && lastWasSpace != isSpace {
			tokens = append(tokens, builder.String())
			builder.Reset()
		}
		lastWasSpace = isSpace
		builder.WriteRune(r)
	}
	if builder.Len() > 0 {
		tokens = append(tokens, builder.String())
	}
	return tokens
}

func isSpaceToken(tok string) bool {
	for _, r := range tok {
		return unicode.IsSpace(r)
	}
	return false
}
