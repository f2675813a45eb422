// Package translit maps Arabizi (Latin letters and digits standing in for
// Arabic/Darija) to Arabic script with an ordered substitution list.
//
// The list is applied sequentially over the whole string, so order is
// semantic: digraphs must precede the single letters they contain. The list
// is kept byte-for-byte in its reference order, including the trailing
// "9a"/"9i"/"9u" entries that the earlier bare "9" shadows; reordering them
// changes output and is a policy decision, not a cleanup.
package translit

import (
	"regexp"

	"warden/internal/core/normalize"
)

// rule is one (pattern, replacement) pair of the ordered list
type rule struct {
	re  *regexp.Regexp
	out string
}

var rules = compile([][2]string{
	{"ch", "ش"},
	{"gh", "غ"},
	{"kh", "خ"},
	{"sh", "ش"}, // fallback
	{"3", "ع"},
	{"7", "ح"},
	{"9", "ق"},
	{"2", "ء"},
	{"5", "خ"},
	{"6", "ط"},
	{"9a", "قا"},
	{"9i", "قي"},
	{"9u", "قو"},
})

// punctRuns matches runs of Arabic and Latin sentence punctuation
var punctRuns = regexp.MustCompile(`[،؛,!?:;]+`)

func compile(pairs [][2]string) []rule {
	out := make([]rule, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, rule{
			re:  regexp.MustCompile("(?i)" + regexp.QuoteMeta(p[0])),
			out: p[1],
		})
	}
	return out
}

// ToArabic rewrites Arabizi tokens to Arabic script, collapses repeated
// punctuation to a single mark, and re-collapses whitespace.
// Pure function; Arabic-script input passes through unchanged
func ToArabic(s string) string {
	if s == "" {
		return ""
	}
	for _, r := range rules {
		s = r.re.ReplaceAllString(s, r.out)
	}
	s = punctRuns.ReplaceAllStringFunc(s, func(m string) string {
		for _, r := range m {
			return string(r)
		}
		return m
	})
	return normalize.CollapseSpaces(s)
}
