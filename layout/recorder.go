package layout

import "unicode/utf8"

// DefaultCharWidth 是 Recorder 独立使用时每个字符的宽度系数：宽度 = 字符数 × 字号(pt) × 系数（mm）。
const DefaultCharWidth = 0.18

// Recorder 记录所有绘制调用，用于调试 JSON 与测试。
// Next 不为空时，Recorder 把调用转发给 Next，并以 Next 的测量结果为准；
// 否则使用等宽近似测量。
type Recorder struct {
	Next      Surface
	CharWidth float64

	commands []Command
	page     int
	style    FontStyle
	size     float64
}

var _ Surface = (*Recorder)(nil)

// NewRecorder 创建记录器，next 可以为 nil。
func NewRecorder(next Surface) *Recorder {
	return &Recorder{Next: next, CharWidth: DefaultCharWidth, style: FontNormal, size: 10}
}

// Commands 返回按调用顺序记录的指令。
func (r *Recorder) Commands() []Command { return r.commands }

// PageCount 返回已使用的页数。
func (r *Recorder) PageCount() int { return r.page + 1 }

// Texts 只返回文本指令。
func (r *Recorder) Texts() []Command {
	var out []Command
	for _, c := range r.commands {
		if c.Op == OpText {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) MeasureTextWidth(text string, size float64, style FontStyle) float64 {
	if r.Next != nil {
		return r.Next.MeasureTextWidth(text, size, style)
	}
	return float64(utf8.RuneCountInString(text)) * size * r.charWidth()
}

func (r *Recorder) WrapText(text string, maxWidth float64) []string {
	if r.Next != nil {
		return r.Next.WrapText(text, maxWidth)
	}
	return Wrap(text, maxWidth, func(s string) float64 {
		return r.MeasureTextWidth(s, r.size, r.style)
	})
}

func (r *Recorder) SetFont(style FontStyle) {
	r.style = style
	r.record(Command{Op: OpFont, Style: style})
	if r.Next != nil {
		r.Next.SetFont(style)
	}
}

func (r *Recorder) SetFontSize(size float64) {
	r.size = size
	r.record(Command{Op: OpFontSize, Size: size})
	if r.Next != nil {
		r.Next.SetFontSize(size)
	}
}

func (r *Recorder) SetTextColor(c Color) {
	r.record(Command{Op: OpTextColor, Color: &c})
	if r.Next != nil {
		r.Next.SetTextColor(c)
	}
}

func (r *Recorder) SetFillColor(c Color) {
	r.record(Command{Op: OpFillColor, Color: &c})
	if r.Next != nil {
		r.Next.SetFillColor(c)
	}
}

func (r *Recorder) SetDrawColor(c Color) {
	r.record(Command{Op: OpDrawColor, Color: &c})
	if r.Next != nil {
		r.Next.SetDrawColor(c)
	}
}

func (r *Recorder) DrawText(text string, x, y float64, align Align) {
	r.record(Command{Op: OpText, Text: text, X: x, Y: y, Align: align, Size: r.size, Style: r.style})
	if r.Next != nil {
		r.Next.DrawText(text, x, y, align)
	}
}

func (r *Recorder) DrawFilledRoundedRect(x, y, w, h, radius float64) {
	r.record(Command{Op: OpRect, X: x, Y: y, W: w, H: h, R: radius})
	if r.Next != nil {
		r.Next.DrawFilledRoundedRect(x, y, w, h, radius)
	}
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 float64) {
	r.record(Command{Op: OpLine, X: x1, Y: y1, X2: x2, Y2: y2})
	if r.Next != nil {
		r.Next.DrawLine(x1, y1, x2, y2)
	}
}

func (r *Recorder) StartNewPage() {
	r.page++
	r.record(Command{Op: OpNewPage})
	if r.Next != nil {
		r.Next.StartNewPage()
	}
}

func (r *Recorder) record(c Command) {
	c.Page = r.page
	r.commands = append(r.commands, c)
}

func (r *Recorder) charWidth() float64 {
	if r.CharWidth <= 0 {
		return DefaultCharWidth
	}
	return r.CharWidth
}
