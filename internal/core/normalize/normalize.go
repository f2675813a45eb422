// Package normalize provides the deterministic text canonicalizer run before
// transliteration and scoring.
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unify curly/backtick quote variants to ASCII quotes
// 3 Remove zero-width and format chars ZWJ ZWNJ FEFF etc
// 4 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return runes.Remove(runes.In(unicode.Cf)) // strip format chars
	},
}

var quoteReplacer = strings.NewReplacer(
	"’", "'", // right single
	"‘", "'", // left single
	"“", `"`, // left double
	"”", `"`, // right double
	"`", "'",
	"´", "'", // acute accent
)

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the normalized form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2 unify quotes
	s = quoteReplacer.Replace(s)

	// 3 strip format chars via pooled transformer then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 4 collapse whitespace and trim
	return CollapseSpaces(ns)
}

// CollapseSpaces converts whitespace runs to a single ASCII space and trims the ends
func CollapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
