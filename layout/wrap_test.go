package layout

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func runeWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func TestWrapWidthLimit(t *testing.T) {
	lines := Wrap("alpha beta gamma delta epsilon zeta eta theta", 12, runeWidth)
	if len(lines) < 3 {
		t.Fatalf("expected several lines, got %v", lines)
	}
	for i, ln := range lines {
		if runeWidth(ln) > 12 {
			t.Fatalf("line %d exceeds limit: %q", i, ln)
		}
		if ln != strings.TrimSpace(ln) {
			t.Fatalf("line %d should be trimmed: %q", i, ln)
		}
	}
}

func TestWrapSplitsLongWords(t *testing.T) {
	lines := Wrap(strings.Repeat("a", 25), 10, runeWidth)
	if len(lines) != 3 || lines[0] != strings.Repeat("a", 10) || lines[2] != strings.Repeat("a", 5) {
		t.Fatalf("unexpected split %v", lines)
	}
}

func TestWrapHonorsNewlines(t *testing.T) {
	lines := Wrap("foo\n\nbar", 100, runeWidth)
	if len(lines) != 3 || lines[1] != "" {
		t.Fatalf("expected blank middle line, got %q", lines)
	}
}

// 当第一行宽度与容器宽度恰好相等且后面紧跟一个显式换行时，不应产生额外的空行。
func TestWrapNoBlankLineWhenEqualWidthThenNewline(t *testing.T) {
	lines := Wrap("SAMPLE-A\nSAMPLE-B", runeWidth("SAMPLE-A"), runeWidth)
	if len(lines) != 2 || lines[0] != "SAMPLE-A" || lines[1] != "SAMPLE-B" {
		t.Fatalf("unexpected lines %q", lines)
	}
}

func TestWrapEmpty(t *testing.T) {
	if lines := Wrap("", 10, runeWidth); len(lines) != 1 || lines[0] != "" {
		t.Fatalf("empty input should give a single empty line, got %q", lines)
	}
}
