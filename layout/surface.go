package layout

// Surface 是排版引擎依赖的绘制能力，通常由 PDF 后端实现。
// 所有坐标均为 mm，y 轴向下；DrawText 的 y 为基线位置。
// WrapText 使用当前字体与字号折行。
type Surface interface {
	MeasureTextWidth(text string, size float64, style FontStyle) float64
	WrapText(text string, maxWidth float64) []string

	SetFont(style FontStyle)
	SetFontSize(size float64)
	SetTextColor(c Color)
	SetFillColor(c Color)
	SetDrawColor(c Color)

	DrawText(text string, x, y float64, align Align)
	DrawFilledRoundedRect(x, y, w, h, r float64)
	DrawLine(x1, y1, x2, y2 float64)
	StartNewPage()
}
