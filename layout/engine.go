package layout

import (
	"strings"

	"github.com/ByLCY/medreport/narrative"
)

// Engine 将叙述文本排版为绘制指令序列。Engine 只持有不可变配置，可以被多个 goroutine 共用；
// 每次 Render 使用独立的游标与绘制表面。
type Engine struct {
	cfg Config
}

// NewEngine 使用给定配置创建排版引擎。
func NewEngine(cfg Config) *Engine {
	cfg.PlaceholderLines = append([]string(nil), cfg.PlaceholderLines...)
	return &Engine{cfg: cfg}
}

// Config 返回引擎使用的配置副本。
func (e *Engine) Config() Config {
	cfg := e.cfg
	cfg.PlaceholderLines = append([]string(nil), e.cfg.PlaceholderLines...)
	return cfg
}

// Render 将叙述绘制到 s。任何输入都不会失败：
// 空文本输出占位提示，没有标题时整段按段落排版。
func (e *Engine) Render(text string, s Surface) {
	p := newPager(e.cfg, s)
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		e.placeholder(p)
		return
	}

	doc := narrative.Scan(trimmed)
	if len(doc.Sections) == 0 {
		e.plain(p, doc.Preamble)
		return
	}
	if doc.Preamble != "" {
		e.body(p, narrative.Classify(doc.Preamble))
		p.advance(e.cfg.InterSectionGap)
	}
	for _, sec := range doc.Sections {
		e.section(p, sec)
	}
}

func (e *Engine) placeholder(p *pager) {
	cfg, s := e.cfg, p.surface
	p.reserve(cfg.BannerHeight + cfg.ParagraphGap + float64(len(cfg.PlaceholderLines))*cfg.LineHeight)

	y := p.place(cfg.BannerHeight)
	s.SetFillColor(cfg.WarningColor)
	s.DrawFilledRoundedRect(cfg.LeftMargin, y, cfg.ContentWidth, cfg.BannerHeight, cfg.BannerRadius)
	s.SetFont(FontBold)
	s.SetFontSize(cfg.HeadingFontSize)
	s.SetTextColor(cfg.BannerText)
	s.DrawText(cfg.PlaceholderTitle, cfg.LeftMargin+cfg.ContentWidth/2, y+cfg.BannerHeight*0.65, AlignCenter)
	p.advance(cfg.BannerHeight + cfg.ParagraphGap)

	s.SetFont(FontNormal)
	s.SetFontSize(cfg.BodyFontSize)
	s.SetTextColor(cfg.MutedColor)
	for _, line := range cfg.PlaceholderLines {
		y := p.place(cfg.LineHeight)
		s.DrawText(line, cfg.LeftMargin, y, AlignLeft)
		p.advance(cfg.LineHeight)
	}
}

// plain 处理没有任何标题的叙述：整段文本作为一个段落折行。
func (e *Engine) plain(p *pager, text string) {
	e.bodyFont(p.surface)
	lines := p.surface.WrapText(narrative.StripBold(text), e.cfg.ContentWidth)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			p.advance(e.cfg.LineHeight)
			continue
		}
		y := p.place(e.cfg.LineHeight)
		p.surface.DrawText(line, e.cfg.LeftMargin, y, AlignLeft)
		p.advance(e.cfg.LineHeight)
	}
	p.advance(e.cfg.ParagraphGap)
}

func (e *Engine) section(p *pager, sec narrative.Section) {
	cfg, s := e.cfg, p.surface
	blocks := narrative.Classify(sec.Body)

	// 标题前的预估只看折行数，真正防止越界的是每行写入前的检查
	e.bodyFont(s)
	p.reserve(cfg.HeadingOverhead + float64(e.estimateLines(s, blocks))*cfg.LineHeight)

	title := strings.ToUpper(sec.Title)
	s.SetFont(FontBold)
	s.SetFontSize(cfg.HeadingFontSize)
	s.SetTextColor(cfg.AccentColor)
	y := p.place(cfg.HeadingHeight)
	s.DrawText(title, cfg.LeftMargin, y, AlignLeft)
	width := s.MeasureTextWidth(title, cfg.HeadingFontSize, FontBold)
	s.SetDrawColor(cfg.AccentColor)
	s.DrawLine(cfg.LeftMargin, y+cfg.RuleOffset, cfg.LeftMargin+width, y+cfg.RuleOffset)
	p.advance(cfg.HeadingHeight)

	e.body(p, blocks)
	p.advance(cfg.InterSectionGap)
}

func (e *Engine) estimateLines(s Surface, blocks []narrative.Block) int {
	if len(blocks) == 0 {
		return 0
	}
	texts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		texts = append(texts, b.Text)
	}
	return len(s.WrapText(strings.Join(texts, "\n"), e.cfg.ContentWidth))
}

func (e *Engine) body(p *pager, blocks []narrative.Block) {
	cfg := e.cfg
	if len(blocks) == 0 {
		return
	}
	e.bodyFont(p.surface)
	for _, b := range blocks {
		switch b.Kind {
		case narrative.Bullet:
			e.item(p, b, cfg.BulletIndent, cfg.BulletContinuationIndent)
			p.advance(cfg.ItemGap)
		case narrative.Numbered:
			e.item(p, b, cfg.NumberedIndent, cfg.NumberedContinuationIndent)
			p.advance(cfg.ItemGap)
		default:
			for _, line := range p.surface.WrapText(b.Text, cfg.ContentWidth) {
				y := p.place(cfg.LineHeight)
				p.surface.DrawText(line, cfg.LeftMargin, y, AlignLeft)
				p.advance(cfg.LineHeight)
			}
			p.advance(cfg.ParagraphGap)
		}
	}
}

// item 绘制列表项：首行带标记，续行使用更深的缩进。
func (e *Engine) item(p *pager, b narrative.Block, first, rest float64) {
	cfg := e.cfg
	lines := p.surface.WrapText(b.Text, cfg.ContentWidth-rest)
	for i, line := range lines {
		x := cfg.LeftMargin + rest
		if i == 0 {
			x = cfg.LeftMargin + first
			line = b.Marker + " " + line
		}
		y := p.place(cfg.LineHeight)
		p.surface.DrawText(line, x, y, AlignLeft)
		p.advance(cfg.LineHeight)
	}
}

func (e *Engine) bodyFont(s Surface) {
	s.SetFont(FontNormal)
	s.SetFontSize(e.cfg.BodyFontSize)
	s.SetTextColor(e.cfg.TextColor)
}
