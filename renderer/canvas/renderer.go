package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/medreport/fonts"
	"github.com/ByLCY/medreport/layout"
	"github.com/ByLCY/medreport/renderer"
)

// A4，单位 mm
const (
	A4Width  = 210.0
	A4Height = 297.0

	ruleWidth = 0.3
)

var errFinished = errors.New("PDF 已经输出，不能继续绘制")

// Options configures the canvas surface.
type Options struct {
	// RegularFont/BoldFont 传给 fonts.Load，默认使用内置 Go 字体。
	RegularFont string
	BoldFont    string
	PageWidth   float64
	PageHeight  float64
	Meta        renderer.Meta
}

type page struct {
	c   *canvas.Canvas
	ctx *canvas.Context
}

// Surface draws layout commands via github.com/tdewolff/canvas and writes a PDF on Finish.
type Surface struct {
	opts   Options
	family *canvas.FontFamily
	pages  []*page

	style     layout.FontStyle
	size      float64
	textColor layout.Color
	fillColor layout.Color
	drawColor layout.Color

	err      error
	finished bool
}

var _ renderer.Renderer = (*Surface)(nil)

// New 加载字体并创建第一页。
func New(opts Options) (*Surface, error) {
	if opts.RegularFont == "" {
		opts.RegularFont = "embed:" + fonts.Regular
	}
	if opts.BoldFont == "" {
		opts.BoldFont = "embed:" + fonts.Bold
	}
	if opts.PageWidth <= 0 || opts.PageHeight <= 0 {
		opts.PageWidth, opts.PageHeight = A4Width, A4Height
	}

	family := canvas.NewFontFamily("medreport")
	for _, f := range []struct {
		src   string
		style canvas.FontStyle
	}{{opts.RegularFont, canvas.FontRegular}, {opts.BoldFont, canvas.FontBold}} {
		data, err := fonts.Load(f.src)
		if err != nil {
			return nil, err
		}
		if err := family.LoadFont(data, 0, f.style); err != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", f.src, err)
		}
	}

	s := &Surface{
		opts:      opts,
		family:    family,
		style:     layout.FontNormal,
		size:      10,
		textColor: layout.Gray(0),
		drawColor: layout.Gray(0),
	}
	s.addPage()
	return s, nil
}

// NewFactory 返回每次创建新 Surface 的工厂，meta 中的非空字段覆盖 opts.Meta。
func NewFactory(opts Options) renderer.Factory {
	return func(meta renderer.Meta) (renderer.Renderer, error) {
		o := opts
		o.Meta = mergeMeta(opts.Meta, meta)
		return New(o)
	}
}

func mergeMeta(base, over renderer.Meta) renderer.Meta {
	pick := func(a, b string) string {
		if b != "" {
			return b
		}
		return a
	}
	return renderer.Meta{
		Title:    pick(base.Title, over.Title),
		Subject:  pick(base.Subject, over.Subject),
		Keywords: pick(base.Keywords, over.Keywords),
		Author:   pick(base.Author, over.Author),
		Creator:  pick(base.Creator, over.Creator),
	}
}

// Pages 返回当前页数。
func (s *Surface) Pages() int { return len(s.pages) }

func (s *Surface) MeasureTextWidth(text string, size float64, style layout.FontStyle) float64 {
	return s.face(size, style, s.textColor).TextWidth(text)
}

func (s *Surface) WrapText(text string, maxWidth float64) []string {
	face := s.face(s.size, s.style, s.textColor)
	return layout.Wrap(text, maxWidth, face.TextWidth)
}

func (s *Surface) SetFont(style layout.FontStyle) { s.style = style }
func (s *Surface) SetFontSize(size float64)       { s.size = size }
func (s *Surface) SetTextColor(c layout.Color)    { s.textColor = c }
func (s *Surface) SetFillColor(c layout.Color)    { s.fillColor = c }
func (s *Surface) SetDrawColor(c layout.Color)    { s.drawColor = c }

func (s *Surface) DrawText(text string, x, y float64, align layout.Align) {
	ctx := s.current()
	if ctx == nil {
		return
	}
	face := s.face(s.size, s.style, s.textColor)
	ctx.DrawText(x, y, canvas.NewTextLine(face, text, textAlign(align)))
}

func (s *Surface) DrawFilledRoundedRect(x, y, w, h, r float64) {
	ctx := s.current()
	if ctx == nil {
		return
	}
	ctx.SetFillColor(toColor(s.fillColor))
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(x, y, canvas.RoundedRectangle(w, h, r))
}

func (s *Surface) DrawLine(x1, y1, x2, y2 float64) {
	ctx := s.current()
	if ctx == nil {
		return
	}
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(toColor(s.drawColor))
	ctx.SetStrokeWidth(ruleWidth)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(x2-x1, y2-y1)
	ctx.DrawPath(x1, y1, p)
}

func (s *Surface) StartNewPage() {
	if s.finished {
		s.fail(errFinished)
		return
	}
	s.addPage()
}

// Finish 输出 PDF。绘制过程中的第一个错误会在这里返回。
func (s *Surface) Finish() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.finished {
		return nil, errFinished
	}
	s.finished = true

	var buf bytes.Buffer
	writer := pdf.New(&buf, s.opts.PageWidth, s.opts.PageHeight, nil)
	m := s.opts.Meta
	writer.SetInfo(m.Title, m.Subject, m.Keywords, m.Author, m.Creator)
	for i, pg := range s.pages {
		if i > 0 {
			writer.NewPage(s.opts.PageWidth, s.opts.PageHeight)
		}
		pg.c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Surface) addPage() {
	c := canvas.New(s.opts.PageWidth, s.opts.PageHeight)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，y 向下
	s.pages = append(s.pages, &page{c: c, ctx: ctx})
}

func (s *Surface) current() *canvas.Context {
	if s.finished {
		s.fail(errFinished)
		return nil
	}
	return s.pages[len(s.pages)-1].ctx
}

func (s *Surface) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *Surface) face(size float64, style layout.FontStyle, col layout.Color) *canvas.FontFace {
	fs := canvas.FontRegular
	if style == layout.FontBold {
		fs = canvas.FontBold
	}
	return s.family.Face(size, toColor(col), fs, canvas.FontNormal)
}

func textAlign(a layout.Align) canvas.TextAlign {
	switch a {
	case layout.AlignCenter:
		return canvas.Center
	case layout.AlignRight:
		return canvas.Right
	default:
		return canvas.Left
	}
}

func toColor(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
