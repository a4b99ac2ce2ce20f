package canvasrenderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ByLCY/medreport/layout"
	"github.com/ByLCY/medreport/renderer"
)

func newSurface(t *testing.T) *Surface {
	t.Helper()
	s, err := New(Options{Meta: renderer.Meta{Title: "Narrative", Creator: "medreport"}})
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}
	return s
}

func TestWrapTextGreedy(t *testing.T) {
	s := newSurface(t)
	s.SetFontSize(12)
	lines := s.WrapText("hello world again", 10)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(lines))
	}
}

func TestWrapTextHonorsNewlines(t *testing.T) {
	s := newSurface(t)
	lines := s.WrapText("foo\n\nbar", 100)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", len(lines))
	}
	if lines[1] != "" {
		t.Fatalf("expected middle line to be blank, got %q", lines[1])
	}
}

func TestMeasureScalesWithSize(t *testing.T) {
	s := newSurface(t)
	small := s.MeasureTextWidth("Clinical Notes", 10, layout.FontNormal)
	large := s.MeasureTextWidth("Clinical Notes", 20, layout.FontNormal)
	if small <= 0 || large <= small {
		t.Fatalf("width should grow with font size: %g -> %g", small, large)
	}
	if s.MeasureTextWidth("", 10, layout.FontBold) != 0 {
		t.Fatalf("empty text should have zero width")
	}
}

func TestFinishWritesAllPages(t *testing.T) {
	s := newSurface(t)
	rec := layout.NewRecorder(s)

	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString("**Section:**\n")
		for j := 0; j < 12; j++ {
			b.WriteString("• Blood pressure reviewed and medication adherence discussed at length with the patient.\n")
		}
	}
	layout.NewEngine(layout.DefaultConfig()).Render(b.String(), rec)

	out, err := s.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if rec.PageCount() < 2 {
		t.Fatalf("expected multiple pages, got %d", rec.PageCount())
	}
	n, err := renderer.PageCount(out)
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	if n != rec.PageCount() || n != s.Pages() {
		t.Fatalf("pdf pages=%d recorder=%d surface=%d", n, rec.PageCount(), s.Pages())
	}
}

func TestFinishTwiceFails(t *testing.T) {
	s := newSurface(t)
	layout.NewEngine(layout.DefaultConfig()).Render("", s)
	if _, err := s.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := s.Finish(); err == nil {
		t.Fatalf("expected error on second finish")
	}
	s.DrawText("late", 10, 10, layout.AlignLeft)
	if _, err := s.Finish(); err == nil {
		t.Fatalf("expected error after drawing on finished surface")
	}
}

func TestNewRejectsMissingFont(t *testing.T) {
	if _, err := New(Options{RegularFont: "embed:missing"}); err == nil {
		t.Fatalf("expected font error")
	}
}

func TestFactoryCreatesIndependentSurfaces(t *testing.T) {
	factory := NewFactory(Options{Meta: renderer.Meta{Creator: "medreport", Author: "clinic"}})
	a, err := factory(renderer.Meta{Title: "A"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	b, err := factory(renderer.Meta{Title: "B", Author: "Dr. B"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	a.StartNewPage()
	if a.(*Surface).Pages() != 2 || b.(*Surface).Pages() != 1 {
		t.Fatalf("surfaces should not share pages")
	}
	m := b.(*Surface).opts.Meta
	if m.Title != "B" || m.Author != "Dr. B" || m.Creator != "medreport" {
		t.Fatalf("unexpected meta %+v", m)
	}
}
