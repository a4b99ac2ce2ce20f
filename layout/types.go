package layout

// 该文件定义绘制表面使用的基础类型，以及调试 JSON 共用的绘制指令记录。

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Gray 返回灰度颜色。
func Gray(v int) Color { return Color{R: v, G: v, B: v} }

// FontStyle 为字体样式，目前只区分常规与粗体。
type FontStyle string

const (
	FontNormal FontStyle = "normal"
	FontBold   FontStyle = "bold"
)

// Align 为文本水平对齐方式，x 坐标即对齐锚点。
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Op 标识一条绘制指令。
type Op string

const (
	OpText      Op = "text"
	OpRect      Op = "rect"
	OpLine      Op = "line"
	OpNewPage   Op = "new-page"
	OpFont      Op = "font"
	OpFontSize  Op = "font-size"
	OpTextColor Op = "text-color"
	OpFillColor Op = "fill-color"
	OpDrawColor Op = "draw-color"
)

// Command 记录一次对绘制表面的调用。坐标单位为 mm，字号单位为 pt。
// Page 从 0 开始，表示指令落在第几页。
type Command struct {
	Op    Op        `json:"op"`
	Page  int       `json:"page"`
	Text  string    `json:"text,omitempty"`
	X     float64   `json:"x,omitempty"`
	Y     float64   `json:"y,omitempty"`
	X2    float64   `json:"x2,omitempty"`
	Y2    float64   `json:"y2,omitempty"`
	W     float64   `json:"w,omitempty"`
	H     float64   `json:"h,omitempty"`
	R     float64   `json:"r,omitempty"`
	Size  float64   `json:"size,omitempty"`
	Style FontStyle `json:"style,omitempty"`
	Color *Color    `json:"color,omitempty"`
	Align Align     `json:"align,omitempty"`
}
