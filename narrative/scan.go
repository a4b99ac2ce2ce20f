package narrative

import "strings"

// boldMarker 是标题使用的粗体标记，标题形如 **Title:**。
const boldMarker = "**"

// Section 是叙述中的一个带标题段落，Body 截止到下一个标题或文本结尾。
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Document 保存扫描结果。
// Preamble 为第一个标题之前的文字；没有任何标题时整段文本都落在 Preamble 中。
type Document struct {
	Preamble string    `json:"preamble,omitempty"`
	Sections []Section `json:"sections"`
}

// Scan 从左到右扫描文本并提取互不重叠的标题段落。
// 每个位置上第一个合法标题胜出，已找到的标题不会被回溯；
// 不合法的标记（例如结尾处未闭合的 **）保留在正文中。
func Scan(text string) Document {
	var doc Document
	start, title, bodyStart, ok := nextHeading(text, 0)
	if !ok {
		doc.Preamble = strings.TrimSpace(text)
		return doc
	}
	doc.Preamble = strings.TrimSpace(text[:start])
	for ok {
		nextStart, nextTitle, nextBody, found := nextHeading(text, bodyStart)
		end := len(text)
		if found {
			end = nextStart
		}
		doc.Sections = append(doc.Sections, Section{
			Title: title,
			Body:  strings.TrimSpace(text[bodyStart:end]),
		})
		title, bodyStart, ok = nextTitle, nextBody, found
	}
	return doc
}

// nextHeading 从 from 开始寻找下一个合法标题，返回标记起点、标题文字与正文起点。
func nextHeading(text string, from int) (int, string, int, bool) {
	for i := from; i < len(text); {
		idx := strings.Index(text[i:], boldMarker)
		if idx < 0 {
			return 0, "", 0, false
		}
		at := i + idx
		if title, bodyStart, ok := readHeading(text, at); ok {
			return at, title, bodyStart, true
		}
		i = at + 1
	}
	return 0, "", 0, false
}

// readHeading 尝试在 at 处读取 **title:**。
// 标题内不允许出现 * 或换行，去掉冒号与空白后不能为空。
func readHeading(text string, at int) (string, int, bool) {
	inner := at + len(boldMarker)
	closing := strings.Index(text[inner:], boldMarker)
	if closing < 0 {
		return "", 0, false
	}
	raw := text[inner : inner+closing]
	if strings.ContainsAny(raw, "*\n") || !strings.HasSuffix(raw, ":") {
		return "", 0, false
	}
	title := strings.TrimSpace(strings.TrimSuffix(raw, ":"))
	if title == "" {
		return "", 0, false
	}
	return title, inner + closing + len(boldMarker), true
}

// StripBold 去掉正文里残留的行内粗体标记。
func StripBold(text string) string {
	return strings.ReplaceAll(text, boldMarker, "")
}
