package layout

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ByLCY/medreport/dsl"
)

// LoadTheme 读取主题文件并叠加到 base 之上。
func LoadTheme(path string, base Config) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("无法打开主题文件 %s: %w", path, err)
	}
	defer file.Close()

	theme, err := dsl.Parse(file)
	if err != nil {
		return Config{}, fmt.Errorf("解析主题文件失败: %w", err)
	}
	return ConfigFromTheme(theme, base)
}

// ConfigFromTheme 将主题中的设置覆盖到 base 上，并校验结果。
// 未知的分组或键会报错，避免拼写错误被静默忽略。
func ConfigFromTheme(theme *dsl.Theme, base Config) (Config, error) {
	cfg := base
	cfg.PlaceholderLines = append([]string(nil), base.PlaceholderLines...)
	if theme == nil {
		return cfg, cfg.Validate()
	}

	// type 先于 spacing 处理，倍数行高依赖正文字号
	order := []string{"page", "type", "spacing", "colors", "placeholder"}
	known := map[string]bool{}
	for _, name := range order {
		known[name] = true
	}
	for _, g := range theme.Groups {
		if !known[g.Name] {
			return Config{}, fmt.Errorf("%s: 未知的主题分组 %s", g.Pos, g.Name)
		}
	}

	for _, name := range order {
		for _, g := range theme.Groups {
			if g.Name != name {
				continue
			}
			if err := applyGroup(&cfg, g); err != nil {
				return Config{}, err
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("主题 %s 参数无效: %w", theme.Name, err)
	}
	return cfg, nil
}

func applyGroup(cfg *Config, g *dsl.Group) error {
	var lines []string
	for _, entry := range g.Entries {
		raw := entry.Value.Text()
		var err error
		switch g.Name {
		case "page":
			err = applyPage(cfg, entry.Key, raw)
		case "type":
			err = applyType(cfg, entry.Key, raw)
		case "spacing":
			err = applySpacing(cfg, entry.Key, raw)
		case "colors":
			err = applyColor(cfg, entry.Key, raw)
		case "placeholder":
			switch entry.Key {
			case "title":
				cfg.PlaceholderTitle = raw
			case "line":
				lines = append(lines, raw)
			default:
				err = unknownKey(entry.Key)
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %s.%s: %w", entry.Pos, g.Name, entry.Key, err)
		}
	}
	if len(lines) > 0 {
		cfg.PlaceholderLines = lines
	}
	return nil
}

func applyPage(cfg *Config, key, raw string) error {
	targets := map[string]*float64{
		"top":    &cfg.TopMargin,
		"bottom": &cfg.PageBottomThreshold,
		"left":   &cfg.LeftMargin,
		"width":  &cfg.ContentWidth,
	}
	return setLength(targets, key, raw)
}

func applySpacing(cfg *Config, key, raw string) error {
	if key == "line-height" {
		spec, err := ParseLineHeight(raw)
		if err != nil {
			return err
		}
		cfg.LineHeight = spec.ResolveMM(cfg.BodyFontSize)
		return nil
	}
	targets := map[string]*float64{
		"bullet-indent":         &cfg.BulletIndent,
		"bullet-continuation":   &cfg.BulletContinuationIndent,
		"numbered-indent":       &cfg.NumberedIndent,
		"numbered-continuation": &cfg.NumberedContinuationIndent,
		"item-gap":              &cfg.ItemGap,
		"paragraph-gap":         &cfg.ParagraphGap,
		"section-gap":           &cfg.InterSectionGap,
		"heading-height":        &cfg.HeadingHeight,
		"heading-overhead":      &cfg.HeadingOverhead,
		"rule-offset":           &cfg.RuleOffset,
		"banner-height":         &cfg.BannerHeight,
		"banner-radius":         &cfg.BannerRadius,
	}
	return setLength(targets, key, raw)
}

func applyType(cfg *Config, key, raw string) error {
	l, err := ParseLength(raw)
	if err != nil {
		return err
	}
	switch key {
	case "body":
		cfg.BodyFontSize = l.ToPT()
	case "heading":
		cfg.HeadingFontSize = l.ToPT()
	default:
		return unknownKey(key)
	}
	return nil
}

func applyColor(cfg *Config, key, raw string) error {
	targets := map[string]*Color{
		"accent":      &cfg.AccentColor,
		"warning":     &cfg.WarningColor,
		"text":        &cfg.TextColor,
		"muted":       &cfg.MutedColor,
		"banner-text": &cfg.BannerText,
	}
	target, ok := targets[key]
	if !ok {
		return unknownKey(key)
	}
	c, err := parseColor(raw)
	if err != nil {
		return err
	}
	*target = c
	return nil
}

func setLength(targets map[string]*float64, key, raw string) error {
	target, ok := targets[key]
	if !ok {
		return unknownKey(key)
	}
	l, err := ParseLength(raw)
	if err != nil {
		return err
	}
	*target = l.ToMM()
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("未知的设置项 %s", key)
}

// parseColor 支持 #rgb、#rrggbb 以及 0-255 的灰度数字。
func parseColor(value string) (Color, error) {
	if !strings.HasPrefix(value, "#") {
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
		}
		return Gray(v), nil
	}
	hex := strings.TrimPrefix(value, "#")
	if len(hex) == 3 {
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	n, err := strconv.ParseUint(hex[:6], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
	}
	return Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}
