package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// CompiledPattern is one configured word or phrase, compiled to a matcher.
// The value is immutable after compilation; Go regexps carry no cursor state,
// so a CompiledPattern is safe to share across concurrent evaluations.
type CompiledPattern struct {
	Source   string
	Kind     models.MatchKind
	Wildcard bool
	re       *regexp.Regexp
}

// Matches reports whether the pattern matches the normalized text.
func (p *CompiledPattern) Matches(text string) bool {
	return p.re.MatchString(text)
}

// CompilePattern turns a configured pattern into a CompiledPattern.
//
// The source is normalized under the same mode as the message text it will
// compare against: smart-mode patterns get the same leet decoding and
// connector stripping as smart-mode messages, so "free-nitro" compiles to
// "freenitro" and still matches. Normalization runs per wildcard segment
// because "*" sits in the connector set, and a whole-string pass would eat
// wildcards written between letters. A "*" acts as a wildcard matching any
// sequence; every other regex metacharacter is escaped. Word patterns in
// exact mode (and only those, and only without a wildcard) are wrapped in
// word boundaries, so "cat" does not match "category". Contains and smart
// mode, wildcard patterns and phrases all match as plain substrings.
//
// A malformed pattern returns (nil, false): the caller logs it and moves on,
// one bad entry never blocks the rest of the list.
func CompilePattern(source string, mode models.FilterMode, kind models.MatchKind) (*CompiledPattern, bool) {
	smart := mode == models.FilterModeSmart

	segments := strings.Split(source, "*")
	for i, seg := range segments {
		segments[i] = Normalize(seg, smart)
	}
	if smart {
		// A connector at a segment edge survives normalization (no letter on
		// the wildcard side), yet in message text it sits between letters and
		// gets stripped. Trim it so "discord.gg/*" still matches.
		for i := range segments {
			if i > 0 {
				segments[i] = strings.TrimLeft(segments[i], connectors)
			}
			if i < len(segments)-1 {
				segments[i] = strings.TrimRight(segments[i], connectors)
			}
		}
	}
	normalized := strings.Join(segments, "*")
	if strings.Trim(normalized, "*") == "" {
		return nil, false
	}

	wildcard := strings.Contains(normalized, "*")

	for i, seg := range segments {
		segments[i] = regexp.QuoteMeta(seg)
	}
	expr := strings.Join(segments, ".*")

	if mode == models.FilterModeExact && !wildcard && kind == models.MatchKindWord {
		expr = fmt.Sprintf(`\b%s\b`, expr)
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, false
	}

	return &CompiledPattern{
		Source:   normalized,
		Kind:     kind,
		Wildcard: wildcard,
		re:       re,
	}, true
}
