package layout

import (
	"strconv"
	"strings"
)

// 该文件定义主题文件中长度与行高的单位换算。

// Unit 表示长度的原始单位。
type Unit int

const (
	UnitNone Unit = iota // 无单位数字，例如倍数
	UnitMM               // 毫米
	UnitCM               // 厘米
	UnitIN               // 英寸
	UnitPT               // 点
)

// pt 与 mm 的换算常量。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

func (u Unit) String() string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	default:
		return ""
	}
}

// Length 保存数值与单位。
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToMM 换算为毫米；无单位的数值按毫米处理。
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * 25.4
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

// ToPT 换算为点；无单位的数值按点处理（字号习惯）。
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitNone, UnitPT:
		return l.Value
	default:
		return l.ToMM() * MmToPt
	}
}

// ParseLength 解析 "12pt"、"20mm"、"1.5cm" 之类的长度。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	unit := UnitNone
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			v = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, err
	}
	return Length{Value: f, Unit: unit}, nil
}

// LineHeightSpec 区分倍数行高（1.4x）与绝对行高（5mm、14pt）。
type LineHeightSpec struct {
	Factor float64 `json:"factor,omitempty"`
	Len    Length  `json:"len,omitempty"`
}

// ParseLineHeight 解析行高，"x" 结尾表示字号倍数。
func ParseLineHeight(value string) (LineHeightSpec, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if strings.HasSuffix(v, "x") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "x"), 64)
		if err != nil {
			return LineHeightSpec{}, err
		}
		return LineHeightSpec{Factor: f}, nil
	}
	l, err := ParseLength(v)
	if err != nil {
		return LineHeightSpec{}, err
	}
	return LineHeightSpec{Len: l}, nil
}

// ResolveMM 以 fontSizePt 为基准计算毫米行高。
func (s LineHeightSpec) ResolveMM(fontSizePt float64) float64 {
	if s.Factor > 0 {
		return fontSizePt * s.Factor * PtToMm
	}
	return s.Len.ToMM()
}
