// Package heuristics implements the lexical incitement scorer over a lexeme pack
package heuristics

import (
	"warden/internal/core/lexicon"
)

// Scorer produces a small additive bonus from lexeme matches.
// Deterministic, no external calls, no errors
type Scorer struct {
	pack *lexicon.Pack
}

// New constructs a Scorer over the given pack
func New(p *lexicon.Pack) *Scorer { return &Scorer{pack: p} }

// Bonus returns the capped per-pattern bonus for text.
// Each pattern contributes its weight at most once regardless of match count
func (s *Scorer) Bonus(text string) float64 {
	if text == "" {
		return 0
	}
	bonus := 0.0
	for _, lx := range s.pack.Lexemes {
		if lx.Re.MatchString(text) {
			bonus += s.pack.Weight
		}
	}
	if bonus > s.pack.Cap {
		return s.pack.Cap
	}
	return bonus
}

// Cap exposes the pack ceiling (handy for tests and fusion docs)
func (s *Scorer) Cap() float64 { return s.pack.Cap }
