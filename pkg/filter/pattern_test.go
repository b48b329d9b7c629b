package filter

import (
	"testing"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

func TestCompilePatternWildcard(t *testing.T) {
	cp, ok := CompilePattern("disc*rd", models.FilterModeExact, models.MatchKindWord)
	if !ok {
		t.Fatal("CompilePattern returned not ok")
	}
	if !cp.Wildcard {
		t.Error("Wildcard flag should be set")
	}

	tests := []struct {
		text string
		want bool
	}{
		{"discord", true},
		{"discxrd", true},
		{"join my discord server", true},
		{"disc", false},
	}
	for _, tt := range tests {
		if got := cp.Matches(tt.text); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestCompilePatternBoundaries(t *testing.T) {
	tests := []struct {
		name string
		mode models.FilterMode
		kind models.MatchKind
		text string
		want bool
	}{
		{"exact word no substring", models.FilterModeExact, models.MatchKindWord, "category", false},
		{"exact word whole word", models.FilterModeExact, models.MatchKindWord, "my cat sleeps", true},
		{"contains matches substring", models.FilterModeContains, models.MatchKindWord, "category", true},
		{"smart matches substring", models.FilterModeSmart, models.MatchKindWord, "category", true},
		{"phrase never bounded", models.FilterModeExact, models.MatchKindPhrase, "concatenate", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, ok := CompilePattern("cat", tt.mode, tt.kind)
			if !ok {
				t.Fatal("CompilePattern returned not ok")
			}
			if got := cp.Matches(tt.text); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCompilePatternEscapesMetacharacters(t *testing.T) {
	cp, ok := CompilePattern("a+b", models.FilterModeContains, models.MatchKindWord)
	if !ok {
		t.Fatal("CompilePattern returned not ok")
	}
	if !cp.Matches("a+b") {
		t.Error("literal a+b should match")
	}
	if cp.Matches("aab") {
		t.Error("+ must be escaped, aab should not match")
	}
}

// TestCompilePatternSmartSource guards that smart-mode patterns compile
// against the same normal form as smart-mode message text: a source written
// with connectors or leetspeak must still match once both sides normalize.
func TestCompilePatternSmartSource(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantSource string
		text       string
	}{
		{"connector in source", "free-nitro", "freenitro", "claim your free-nitro here"},
		{"leet digit and connector", "n1tro-gratis", "nitrogratis", "reclama n1tro-gratis ya"},
		{"dotted source", "s.p.a.m", "spam", "esto es s.p.a.m puro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, ok := CompilePattern(tt.source, models.FilterModeSmart, models.MatchKindWord)
			if !ok {
				t.Fatal("CompilePattern returned not ok")
			}
			if cp.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", cp.Source, tt.wantSource)
			}
			if !cp.Matches(Normalize(tt.text, true)) {
				t.Errorf("pattern %q should match normalized %q", tt.source, tt.text)
			}
		})
	}
}

// TestCompilePatternSmartKeepsWildcard: "*" sits in the connector set, so the
// smart normalizer must not swallow wildcards written between letters.
func TestCompilePatternSmartKeepsWildcard(t *testing.T) {
	cp, ok := CompilePattern("disc*rd", models.FilterModeSmart, models.MatchKindWord)
	if !ok {
		t.Fatal("CompilePattern returned not ok")
	}
	if !cp.Wildcard {
		t.Error("Wildcard flag should survive smart normalization")
	}
	if !cp.Matches(Normalize("join my d.i.s.c.o.r.d server", true)) {
		t.Error("smart wildcard pattern should match evasion text")
	}

	invite, ok := CompilePattern("discord.gg/*", models.FilterModeSmart, models.MatchKindWord)
	if !ok {
		t.Fatal("CompilePattern returned not ok")
	}
	if !invite.Matches(Normalize("discord.gg/abcdef", true)) {
		t.Error("trailing wildcard should match normalized invite link")
	}
}

func TestCompilePatternWildcardOnly(t *testing.T) {
	if _, ok := CompilePattern("*", models.FilterModeSmart, models.MatchKindWord); ok {
		t.Error("wildcard-only pattern should not compile")
	}
}

func TestCompilePatternNormalizesSource(t *testing.T) {
	cp, ok := CompilePattern("  SPAM  ", models.FilterModeContains, models.MatchKindWord)
	if !ok {
		t.Fatal("CompilePattern returned not ok")
	}
	if cp.Source != "spam" {
		t.Errorf("Source = %q, want %q", cp.Source, "spam")
	}
	if !cp.Matches("this is spam now") {
		t.Error("lowered source should match normalized text")
	}
}

func TestCompilePatternEmpty(t *testing.T) {
	if _, ok := CompilePattern("   ", models.FilterModeExact, models.MatchKindWord); ok {
		t.Error("blank pattern should not compile")
	}
}
