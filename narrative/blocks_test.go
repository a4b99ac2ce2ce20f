package narrative

import "testing"

func TestClassifyDeterministic(t *testing.T) {
	blocks := Classify("• A\n1. B\nC")
	want := []Block{
		{Kind: Bullet, Marker: "•", Text: "A"},
		{Kind: Numbered, Marker: "1.", Text: "B"},
		{Kind: Paragraph, Text: "C"},
	}
	if len(blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %+v", len(want), len(blocks), blocks)
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Fatalf("block %d mismatch: got=%+v want=%+v", i, blocks[i], want[i])
		}
	}
}

func TestClassifyDropsBlankLines(t *testing.T) {
	blocks := Classify("\n   \nfirst\r\n\n\t\nsecond\n")
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %+v", blocks)
	}
	if blocks[0].Text != "first" || blocks[1].Text != "second" {
		t.Fatalf("unexpected blocks %+v", blocks)
	}
}

func TestClassifyMarkers(t *testing.T) {
	cases := []struct {
		line   string
		kind   BlockKind
		marker string
		text   string
	}{
		{"- ibuprofen 400 mg", Bullet, "-", "ibuprofen 400 mg"},
		{"* rest", Bullet, "*", "rest"},
		{"12. recheck in 2 weeks", Numbered, "12.", "recheck in 2 weeks"},
		{"1.5 mg nightly", Paragraph, "", "1.5 mg nightly"},
		{"-5 degrees", Paragraph, "", "-5 degrees"},
		{"•", Paragraph, "", "•"},
		{"**Note** bring records", Paragraph, "", "Note bring records"},
	}
	for _, tc := range cases {
		blocks := Classify(tc.line)
		if len(blocks) != 1 {
			t.Fatalf("%q: expected one block, got %+v", tc.line, blocks)
		}
		b := blocks[0]
		if b.Kind != tc.kind || b.Marker != tc.marker || b.Text != tc.text {
			t.Errorf("%q: got kind=%s marker=%q text=%q", tc.line, b.Kind, b.Marker, b.Text)
		}
	}
}
