package narrative

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// BlockKind 描述正文行的类别。
type BlockKind int

const (
	Paragraph BlockKind = iota
	Bullet
	Numbered
)

func (k BlockKind) String() string {
	switch k {
	case Bullet:
		return "bullet"
	case Numbered:
		return "numbered"
	default:
		return "paragraph"
	}
}

// MarshalText 让调试 JSON 输出可读的类别名。
func (k BlockKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Block 是分类后的正文单元。Marker 保存原始的项目符号或编号（如 "•"、"12."），
// Text 为去掉标记后的非空内容。
type Block struct {
	Kind   BlockKind `json:"kind"`
	Marker string    `json:"marker,omitempty"`
	Text   string    `json:"text"`
}

// Classify 按换行拆分正文，丢弃空行，并保持原有顺序。
func Classify(body string) []Block {
	var blocks []Block
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(StripBold(line))
		if line == "" {
			continue
		}
		blocks = append(blocks, classifyLine(line))
	}
	return blocks
}

func classifyLine(line string) Block {
	if marker, rest, ok := bulletPrefix(line); ok && rest != "" {
		return Block{Kind: Bullet, Marker: marker, Text: rest}
	}
	if marker, rest, ok := numberPrefix(line); ok && rest != "" {
		return Block{Kind: Numbered, Marker: marker, Text: rest}
	}
	return Block{Kind: Paragraph, Text: line}
}

// bulletPrefix 识别 •/◦/▪ 以及后面紧跟空白的 - 或 *。
func bulletPrefix(line string) (string, string, bool) {
	r, size := utf8.DecodeRuneInString(line)
	switch r {
	case '•', '◦', '▪':
		return string(r), strings.TrimSpace(line[size:]), true
	case '-', '*':
		next, _ := utf8.DecodeRuneInString(line[size:])
		if !unicode.IsSpace(next) {
			return "", "", false
		}
		return string(r), strings.TrimSpace(line[size:]), true
	}
	return "", "", false
}

// numberPrefix 识别 "数字串 + 句点 + 空白"，例如 "3. "；"1.5 mg" 不算编号。
func numberPrefix(line string) (string, string, bool) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != '.' {
		return "", "", false
	}
	rest := line[i+1:]
	if rest != "" {
		next, _ := utf8.DecodeRuneInString(rest)
		if !unicode.IsSpace(next) {
			return "", "", false
		}
	}
	return line[:i+1], strings.TrimSpace(rest), true
}
