package layout

import "math"

// pager 维护当前页的纵向游标，并在写入越过页底阈值前换页。
// 游标始终位于 [TopMargin, PageBottomThreshold] 之内。
type pager struct {
	cfg     Config
	surface Surface
	y       float64
}

func newPager(cfg Config, s Surface) *pager {
	return &pager{cfg: cfg, surface: s, y: cfg.TopMargin}
}

// place 为高度为 h 的写入确定位置：若写入后会超出阈值，先换页再返回页顶。
func (p *pager) place(h float64) float64 {
	if p.y+h > p.cfg.PageBottomThreshold {
		p.newPage()
	}
	return p.y
}

// reserve 是标题前的预估检查，只是启发式：页顶时不会换页，避免产生空白页。
func (p *pager) reserve(h float64) {
	if p.y > p.cfg.TopMargin && p.y+h > p.cfg.PageBottomThreshold {
		p.newPage()
	}
}

// advance 下移游标，间距不会把游标推过阈值。
func (p *pager) advance(d float64) {
	p.y = math.Min(p.y+d, p.cfg.PageBottomThreshold)
}

func (p *pager) newPage() {
	p.surface.StartNewPage()
	p.y = p.cfg.TopMargin
}
