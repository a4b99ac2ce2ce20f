package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/medreport/layout"
	"github.com/ByLCY/medreport/narrative"
	canvasrenderer "github.com/ByLCY/medreport/renderer/canvas"
	"github.com/ByLCY/medreport/upstream"
)

type stubFetcher struct {
	text  string
	err   error
	calls int
}

func (f *stubFetcher) FetchNarrative(ctx context.Context, p upstream.Patient, v []upstream.Visit) (string, error) {
	f.calls++
	return f.text, f.err
}

func newService(t *testing.T, f Fetcher) *Service {
	t.Helper()
	opts := Options{NewRenderer: canvasrenderer.NewFactory(canvasrenderer.Options{})}
	if f != nil {
		opts.Fetcher = f
	}
	s, err := NewService(opts)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return s
}

func ptr(s string) *string { return &s }

func samplePatient() (upstream.Patient, []upstream.Visit) {
	return upstream.Patient{FirstName: "Jane", LastName: "Doe", Allergies: []string{"penicillin"}},
		[]upstream.Visit{
			{Date: "2023-05-01", VisitType: "Follow-up", ChiefComplaint: "Cough"},
			{Date: "2024-02-10", VisitType: "Annual", ChiefComplaint: "Checkup", Notes: "Doing well"},
		}
}

func TestGenerateProvidedNarrative(t *testing.T) {
	f := &stubFetcher{text: "unused"}
	s := newService(t, f)
	res, err := s.Generate(context.Background(), Request{Narrative: ptr("**Summary:** stable\n• BP controlled")})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Source != SourceProvided || f.calls != 0 {
		t.Fatalf("source=%s calls=%d", res.Source, f.calls)
	}
	if res.Pages != 1 || res.ID == "" || !strings.HasPrefix(string(res.PDF), "%PDF") {
		t.Fatalf("unexpected result id=%q pages=%d", res.ID, res.Pages)
	}
}

func TestGenerateUsesUpstream(t *testing.T) {
	f := &stubFetcher{text: "**Assessment:** improving"}
	res, err := newService(t, f).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Source != SourceUpstream || f.calls != 1 {
		t.Fatalf("source=%s calls=%d", res.Source, f.calls)
	}
}

func TestGenerateFallsBackOnUpstreamError(t *testing.T) {
	p, v := samplePatient()
	f := &stubFetcher{err: upstream.ErrUnsuccessful}
	res, err := newService(t, f).Generate(context.Background(), Request{Patient: p, Visits: v})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Source != SourceFallback || res.Pages < 1 {
		t.Fatalf("source=%s pages=%d", res.Source, res.Pages)
	}

	res, err = newService(t, nil).Generate(context.Background(), Request{Patient: p})
	if err != nil || res.Source != SourceFallback {
		t.Fatalf("without fetcher: source=%v err=%v", res, err)
	}
}

func TestLayoutEmptyNarrativeShowsPlaceholder(t *testing.T) {
	res, err := newService(t, nil).Layout(context.Background(), Request{Narrative: ptr("")})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var found bool
	for _, c := range res.Commands {
		if c.Op == layout.OpText && c.Text == layout.DefaultConfig().PlaceholderTitle {
			found = true
		}
	}
	if !found || res.Pages != 1 {
		t.Fatalf("placeholder missing, pages=%d", res.Pages)
	}
}

func TestLayoutFallbackHeadings(t *testing.T) {
	p, v := samplePatient()
	res, err := newService(t, &stubFetcher{err: errors.New("down")}).Layout(context.Background(), Request{Patient: p, Visits: v})
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	var headings []string
	for _, c := range res.Commands {
		if c.Op == layout.OpText && c.Style == layout.FontBold {
			headings = append(headings, c.Text)
		}
	}
	want := "PATIENT INFORMATION|VISIT HISTORY|CLINICAL NOTES"
	if strings.Join(headings, "|") != want {
		t.Fatalf("headings got %v", headings)
	}
}

func TestFallbackNarrative(t *testing.T) {
	p, v := samplePatient()
	text := FallbackNarrative(p, v)
	doc := narrative.Scan(text)
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	info := doc.Sections[0].Body
	if !strings.Contains(info, "Name: Jane Doe") || !strings.Contains(info, "Allergies: penicillin") ||
		!strings.Contains(info, "Gender: Not recorded") {
		t.Fatalf("unexpected patient block %q", info)
	}

	visits := narrative.Classify(doc.Sections[1].Body)
	if len(visits) != 2 || visits[0].Kind != narrative.Bullet {
		t.Fatalf("unexpected visits %+v", visits)
	}
	if !strings.HasPrefix(visits[0].Text, "2024-02-10 Annual") || !strings.HasPrefix(visits[1].Text, "2023-05-01 Follow-up") {
		t.Fatalf("visits should be newest first: %+v", visits)
	}
	if !strings.Contains(doc.Sections[2].Body, "2024-02-10 (Unknown provider): Doing well") {
		t.Fatalf("unexpected notes %q", doc.Sections[2].Body)
	}
}

func TestFallbackNarrativeEmpty(t *testing.T) {
	text := FallbackNarrative(upstream.Patient{}, nil)
	if !strings.Contains(text, "Name: Unknown\n") || !strings.Contains(text, "No visits on record.") ||
		!strings.Contains(text, "No additional clinical notes were recorded.") {
		t.Fatalf("unexpected fallback %q", text)
	}
}

func TestFallbackNarrativeStripsHeadingMarkers(t *testing.T) {
	text := FallbackNarrative(upstream.Patient{FirstName: "**Injected:**"}, nil)
	if got := len(narrative.Scan(text).Sections); got != 3 {
		t.Fatalf("patient data must not add sections, got %d", got)
	}
}

func TestNewServiceRequiresRenderer(t *testing.T) {
	if _, err := NewService(Options{}); err == nil {
		t.Fatalf("expected error without renderer factory")
	}
}
