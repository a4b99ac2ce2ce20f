package layout

import "fmt"

// Config 汇总叙述报告排版需要的全部常量，按值传递、不可变。
// 长度单位为 mm（A4 纵向页面坐标），字号单位为 pt。
type Config struct {
	TopMargin                  float64 `json:"topMargin"`
	PageBottomThreshold        float64 `json:"pageBottomThreshold"`
	LeftMargin                 float64 `json:"leftMargin"`
	ContentWidth               float64 `json:"contentWidth"`
	LineHeight                 float64 `json:"lineHeight"`
	BulletIndent               float64 `json:"bulletIndent"`
	BulletContinuationIndent   float64 `json:"bulletContinuationIndent"`
	NumberedIndent             float64 `json:"numberedIndent"`
	NumberedContinuationIndent float64 `json:"numberedContinuationIndent"`
	ItemGap                    float64 `json:"itemGap"`
	ParagraphGap               float64 `json:"paragraphGap"`
	InterSectionGap            float64 `json:"interSectionGap"`

	// HeadingHeight 是标题行占用的高度（含下划线）。
	HeadingHeight   float64 `json:"headingHeight"`
	// HeadingOverhead 用于标题前的预估：HeadingOverhead + 正文折行数 × LineHeight。
	HeadingOverhead float64 `json:"headingOverhead"`
	// RuleOffset 是标题下划线相对基线的偏移。
	RuleOffset      float64 `json:"ruleOffset"`
	BannerHeight    float64 `json:"bannerHeight"`
	BannerRadius    float64 `json:"bannerRadius"`
	BodyFontSize    float64 `json:"bodyFontSize"`
	HeadingFontSize float64 `json:"headingFontSize"`

	AccentColor  Color `json:"accentColor"`
	WarningColor Color `json:"warningColor"`
	TextColor    Color `json:"textColor"`
	MutedColor   Color `json:"mutedColor"`
	BannerText   Color `json:"bannerText"`

	PlaceholderTitle string   `json:"placeholderTitle"`
	PlaceholderLines []string `json:"placeholderLines"`
}

// DefaultConfig 返回 A4 纵向页面的默认排版参数。
func DefaultConfig() Config {
	return Config{
		TopMargin:                  20,
		PageBottomThreshold:        270,
		LeftMargin:                 20,
		ContentWidth:               170,
		LineHeight:                 5,
		BulletIndent:               5,
		BulletContinuationIndent:   10,
		NumberedIndent:             3,
		NumberedContinuationIndent: 8,
		ItemGap:                    2,
		ParagraphGap:               4,
		InterSectionGap:            8,
		HeadingHeight:              8,
		HeadingOverhead:            20,
		RuleOffset:                 2,
		BannerHeight:               12,
		BannerRadius:               3,
		BodyFontSize:               10,
		HeadingFontSize:            12,
		AccentColor:                Color{R: 41, G: 128, B: 185},
		WarningColor:               Color{R: 230, G: 126, B: 34},
		TextColor:                  Gray(51),
		MutedColor:                 Gray(100),
		BannerText:                 Gray(255),
		PlaceholderTitle:           "COMPREHENSIVE MEDICAL NARRATIVE",
		PlaceholderLines: []string{
			"No AI-generated narrative is available for this patient.",
			"Generate a narrative from the patient record and export the report again.",
			"Refer to the visit history and clinical notes for current details.",
		},
	}
}

// Validate 检查参数之间的约束，主题文件覆盖默认值后需要调用。
func (c Config) Validate() error {
	if c.LineHeight <= 0 {
		return fmt.Errorf("行高必须为正数，实际 %g", c.LineHeight)
	}
	if c.PageBottomThreshold-c.TopMargin < c.LineHeight || c.PageBottomThreshold-c.TopMargin < c.BannerHeight {
		return fmt.Errorf("页面可用高度不足: top=%g bottom=%g", c.TopMargin, c.PageBottomThreshold)
	}
	if c.ContentWidth <= c.BulletContinuationIndent || c.ContentWidth <= c.NumberedContinuationIndent {
		return fmt.Errorf("内容宽度 %g 小于缩进", c.ContentWidth)
	}
	if c.NumberedIndent >= c.BulletIndent || c.NumberedContinuationIndent >= c.BulletContinuationIndent {
		return fmt.Errorf("编号缩进必须小于项目符号缩进")
	}
	if c.ParagraphGap <= c.ItemGap {
		return fmt.Errorf("段落间距 %g 必须大于列表项间距 %g", c.ParagraphGap, c.ItemGap)
	}
	if c.BodyFontSize <= 0 || c.HeadingFontSize <= 0 {
		return fmt.Errorf("字号必须为正数")
	}
	if len(c.PlaceholderLines) != 3 {
		return fmt.Errorf("占位提示需要 3 行，实际 %d 行", len(c.PlaceholderLines))
	}
	return nil
}
