// Package filter implements the word/phrase filter: text normalization,
// pattern compilation, per-guild policy caching, matching and enforcement.
package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// invisibleRanges lists codepoints stripped from every message before
// matching. Zero-width characters and variation selectors are the cheapest
// way to split a banned token without changing how it renders.
var invisibleRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00AD, Hi: 0x00AD, Stride: 1}, // soft hyphen
		{Lo: 0x200B, Hi: 0x200F, Stride: 1}, // zero-width space .. RTL mark
		{Lo: 0x202A, Hi: 0x202E, Stride: 1}, // bidi embedding controls
		{Lo: 0x2060, Hi: 0x2064, Stride: 1}, // word joiner .. invisible plus
		{Lo: 0x2066, Hi: 0x2069, Stride: 1}, // bidi isolate controls
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1}, // variation selectors 1-16
		{Lo: 0xFEFF, Hi: 0xFEFF, Stride: 1}, // BOM / ZWNBSP
	},
	R32: []unicode.Range32{
		{Lo: 0xE0100, Hi: 0xE01EF, Stride: 1}, // variation selectors supplement
	},
}

// leetPair is one substitution of the ordered leetspeak table.
type leetPair struct {
	from string
	to   string
}

// leetTable is applied in order: multi-character sequences must run before
// the single-character ones ("vv" has to become "w" before any later rule
// could touch the individual characters).
var leetTable = []leetPair{
	{"vv", "w"},
	{"()", "o"},
	{"0", "o"},
	{"1", "i"},
	{"2", "z"},
	{"3", "e"},
	{"4", "a"},
	{"5", "s"},
	{"6", "g"},
	{"7", "t"},
	{"8", "b"},
	{"9", "g"},
	{"@", "a"},
	{"$", "s"},
	{"!", "i"},
	{"€", "e"},
	{"£", "l"},
}

// connectors are punctuation characters dropped when they sit alone between
// two letters ("s.p.a.m" -> "spam"). Runs of connectors are left alone so
// ordinary punctuation like "wait..." survives.
const connectors = ".-_*~'`|+,/\\"

// Normalize canonicalizes raw message text before matching. The base pass
// lowercases, strips invisible codepoints and collapses whitespace. With
// smart enabled it additionally folds compatibility forms (NFKC), applies
// the leetspeak table, removes single connectors between letters and
// collapses runs of 3+ identical characters down to 2.
//
// Normalize is pure and idempotent: Normalize(Normalize(s, m), m) ==
// Normalize(s, m) for both modes.
func Normalize(text string, smart bool) string {
	if text == "" {
		return ""
	}

	if smart {
		text = norm.NFKC.String(text)
	}

	text = strings.ToLower(text)
	text = stripInvisible(text)

	if smart {
		for _, p := range leetTable {
			text = strings.ReplaceAll(text, p.from, p.to)
		}
		text = stripConnectors(text)
		text = collapseRuns(text)
	}

	// Collapse whitespace runs to single spaces and trim.
	return strings.Join(strings.Fields(text), " ")
}

// stripInvisible removes every rune covered by invisibleRanges.
func stripInvisible(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(invisibleRanges, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stripConnectors drops a connector rune when the runes on both sides are
// letters. A single pass is enough: after dropping "." in "s.p", the "p"
// becomes the previous letter for the next connector.
func stripConnectors(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	hasPrev := false
	for i, r := range runes {
		if strings.ContainsRune(connectors, r) && hasPrev && unicode.IsLetter(prev) {
			if i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
				// prev stays as-is: the dropped connector joins the letters
				continue
			}
		}
		b.WriteRune(r)
		prev = r
		hasPrev = true
	}
	return b.String()
}

// collapseRuns reduces any run of 3 or more identical runes to exactly 2
// ("heeeello" -> "heello"). Double letters are common in real words, so runs
// of 2 are preserved.
func collapseRuns(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var prev rune
	count := 0
	for _, r := range s {
		if r == prev {
			count++
		} else {
			prev = r
			count = 1
		}
		if count <= 2 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
