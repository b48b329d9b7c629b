package database

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateTerm(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{"short term untouched", "spam", "spam"},
		{"exact limit untouched", strings.Repeat("a", violationTermMaxLen), strings.Repeat("a", violationTermMaxLen)},
		{"ascii cut at limit", strings.Repeat("a", violationTermMaxLen+10), strings.Repeat("a", violationTermMaxLen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateTerm(tt.term); got != tt.want {
				t.Errorf("truncateTerm(%q) = %q, want %q", tt.term, got, tt.want)
			}
		})
	}
}

// TestTruncateTermRuneBoundary: cutting at a raw byte offset inside a
// multi-byte rune would store invalid UTF-8; the cut must back up to the
// start of the rune.
func TestTruncateTermRuneBoundary(t *testing.T) {
	// 63 ASCII bytes followed by a two-byte rune straddling the limit.
	term := strings.Repeat("a", violationTermMaxLen-1) + "ñ"

	got := truncateTerm(term)
	if !utf8.ValidString(got) {
		t.Fatalf("truncateTerm produced invalid UTF-8: %q", got)
	}
	if len(got) > violationTermMaxLen {
		t.Errorf("len = %d, want <= %d", len(got), violationTermMaxLen)
	}
	if want := strings.Repeat("a", violationTermMaxLen-1); got != want {
		t.Errorf("truncateTerm = %q, want %q", got, want)
	}

	multi := strings.Repeat("ñ", violationTermMaxLen)
	if got := truncateTerm(multi); !utf8.ValidString(got) || len(got) > violationTermMaxLen {
		t.Errorf("truncateTerm(%q) = %q, invalid or too long", multi, got)
	}
}
