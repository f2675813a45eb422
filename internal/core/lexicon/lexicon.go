// Package lexicon loads and compiles the incitement lexeme pack from the
// embedded lexemes.json. Patterns cover violence lexemes in Latin
// transliteration, Arabizi shorthand, and Arabic script; moderators curate
// the JSON, the code treats it as data
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
)

//go:embed lexemes.json
var embedded []byte

type rawPattern struct {
	ID      string `json:"id"`
	Pattern string `json:"pattern"`
	Note    string `json:"note,omitempty"`
}

type rawPack struct {
	Version  int          `json:"version"`
	Weight   float64      `json:"weight"`
	Cap      float64      `json:"cap"`
	Patterns []rawPattern `json:"patterns"`
}

// Lexeme is one compiled pattern with its identifier
type Lexeme struct {
	ID string
	Re *regexp.Regexp
}

// Pack represents a compiled lexeme pack for the heuristic scorer
type Pack struct {
	Version int
	// Weight is the per-pattern score increment
	Weight float64
	// Cap is the ceiling on the summed bonus
	Cap     float64
	Lexemes []Lexeme
}

// Load returns the compiled pack from the embedded lexemes.json
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("lexicon: parse lexemes.json: %w", err)
	}
	if rp.Weight <= 0 || rp.Cap <= 0 {
		return nil, fmt.Errorf("lexicon: weight and cap must be positive")
	}
	p := &Pack{Version: rp.Version, Weight: rp.Weight, Cap: rp.Cap}
	for _, r := range rp.Patterns {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("lexicon: compile %q: %w", r.ID, err)
		}
		p.Lexemes = append(p.Lexemes, Lexeme{ID: r.ID, Re: re})
	}
	if len(p.Lexemes) == 0 {
		return nil, fmt.Errorf("lexicon: empty pattern list")
	}
	return p, nil
}

// MustLoad panics on load failure; the pack is embedded so failure is a build defect
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}
