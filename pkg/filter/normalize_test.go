package filter

import "testing"

func TestNormalizeBase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Hello World", "hello world"},
		{"collapse whitespace", "hola   \t  mundo ", "hola mundo"},
		{"zero width stripped", "sp​am", "spam"},
		{"variation selector stripped", "spam️", "spam"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input, false); got != tt.want {
				t.Errorf("Normalize(%q, false) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeSmart(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"leetspeak digits", "h3ll0", "hello"},
		{"leetspeak symbols", "c@$h", "cash"},
		{"multi char before single", "vvord", "word"},
		{"connectors between letters", "s.p.a.m", "spam"},
		{"connector before space kept", "fin. aqui", "fin. aqui"},
		{"repeated chars collapsed", "heeeello", "heello"},
		{"double letters preserved", "hello", "hello"},
		{"mixed evasion", "f.u.c.k you", "fuck you"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input, true); got != tt.want {
				t.Errorf("Normalize(%q, true) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestNormalizePlainLeavesLeetspeak guards the mode split: plain mode must
// not decode leetspeak.
func TestNormalizePlainLeavesLeetspeak(t *testing.T) {
	if got := Normalize("h3ll0", false); got != "h3ll0" {
		t.Errorf("Normalize(\"h3ll0\", false) = %q, want %q", got, "h3ll0")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello World",
		"h3ll0 vvorld",
		"s.p.a.m y heeeello",
		"zero​width  y   espacios",
		"wait... what?!",
		"a.b..c-d_e",
	}

	for _, in := range inputs {
		for _, smart := range []bool{false, true} {
			once := Normalize(in, smart)
			twice := Normalize(once, smart)
			if once != twice {
				t.Errorf("Normalize not idempotent (smart=%v) for %q: %q != %q", smart, in, once, twice)
			}
		}
	}
}

func TestNormalizeNeverGrows(t *testing.T) {
	inputs := []string{"Hello", "h3ll0", "s.p.a.m", "heeeello   mundo"}
	for _, in := range inputs {
		for _, smart := range []bool{false, true} {
			if got := Normalize(in, smart); len(got) > len(in) {
				t.Errorf("Normalize(%q, %v) grew output: %q", in, smart, got)
			}
		}
	}
}
