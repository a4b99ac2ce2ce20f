package dsl_test

import (
	"testing"

	"github.com/ByLCY/medreport/dsl"
)

const sampleTheme = `
// 门诊报告主题
theme Clinic v1 {
  page {
    top: 18mm
    bottom: 275mm
  }

  spacing {
    line-height: 1.5x
    item-gap: 2mm; paragraph-gap: 5mm
  }

  type { body: 10pt heading: 13pt }

  colors {
    accent: #0F62FE
    warning: #E67E22
  }

  placeholder {
    title: "NARRATIVE PENDING"
    line: "first"
    line: "second"
    line: "third"
  }
}
`

func TestParseTheme(t *testing.T) {
	theme, err := dsl.ParseString(sampleTheme)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if theme.Name != "Clinic" || theme.Version != "v1" {
		t.Fatalf("unexpected header: %s %s", theme.Name, theme.Version)
	}
	if len(theme.Groups) != 5 {
		t.Fatalf("expected 5 groups, got %d", len(theme.Groups))
	}

	page := theme.Group("page")
	if page == nil || len(page.Entries) != 2 {
		t.Fatalf("page group missing entries: %+v", page)
	}
	if got := page.Entries[1].Value.Text(); got != "275mm" {
		t.Fatalf("expected bottom 275mm, got %s", got)
	}

	spacing := theme.Group("spacing")
	if spacing == nil || len(spacing.Entries) != 3 {
		t.Fatalf("spacing should hold 3 entries, got %+v", spacing)
	}
	if spacing.Entries[0].Key != "line-height" || spacing.Entries[0].Value.Text() != "1.5x" {
		t.Fatalf("unexpected line-height entry: %+v", spacing.Entries[0])
	}

	inline := theme.Group("type")
	if inline == nil || len(inline.Entries) != 2 {
		t.Fatalf("inline group should hold 2 entries, got %+v", inline)
	}

	colors := theme.Group("colors")
	if colors.Entries[0].Value.Color == nil || *colors.Entries[0].Value.Color != "#0F62FE" {
		t.Fatalf("accent should be parsed as color, got %+v", colors.Entries[0].Value)
	}

	placeholder := theme.Group("placeholder")
	if got := placeholder.Entries[0].Value.Text(); got != "NARRATIVE PENDING" {
		t.Fatalf("string should be unquoted, got %q", got)
	}
	if len(placeholder.Entries) != 4 {
		t.Fatalf("repeated keys should be kept, got %d entries", len(placeholder.Entries))
	}

	if theme.Group("missing") != nil {
		t.Fatalf("unknown group should be nil")
	}
}

func TestParseThemeRejectsGarbage(t *testing.T) {
	if _, err := dsl.ParseString(`theme Broken v1 { page { top 20mm } }`); err == nil {
		t.Fatalf("expected error for entry without colon")
	}
	if _, err := dsl.ParseString(`doc Papyrus v1 { }`); err == nil {
		t.Fatalf("expected error for wrong root keyword")
	}
}
