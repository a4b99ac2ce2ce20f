package binding

import "testing"

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"patient": map[string]any{
			"firstName": "Jane",
			"age":       float64(42),
			"allergies": []any{"penicillin", "latex"},
			"email":     "",
			"phone":     nil,
		},
		"visits": []any{map[string]any{"date": "2024-03-01"}},
	}
	cases := []struct {
		in, want string
	}{
		{"Name: ${patient.firstName}", "Name: Jane"},
		{"Age ${patient.age}", "Age 42"},
		{"${patient.allergies}", "penicillin, latex"},
		{"${visits[0].date}", "2024-03-01"},
		{"${patient.lastName|Unknown}", "Unknown"},
		{"${patient.email|n/a}", "n/a"},
		{"${patient.phone|}", ""},
		{"${patient.lastName}", "${patient.lastName}"},
		{"${visits[3].date|none}", "none"},
		{"${ |x}", "${ |x}"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, data); got != c.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${a|b} ${c}", nil); got != "b ${c}" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestFromStruct(t *testing.T) {
	type visit struct {
		Date string `json:"date"`
	}
	data, err := FromStruct(struct {
		Name   string  `json:"name"`
		Visits []visit `json:"visits"`
	}{Name: "Jane", Visits: []visit{{Date: "2024-01-02"}}})
	if err != nil {
		t.Fatalf("FromStruct: %v", err)
	}
	if got := Interpolate("${name} ${visits[0].date}", data); got != "Jane 2024-01-02" {
		t.Fatalf("unexpected %q", got)
	}
	if _, err := FromStruct(make(chan int)); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
