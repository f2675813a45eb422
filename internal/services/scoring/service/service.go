// Package service implements the scoring pipeline: normalize, transliterate,
// classify, fuse
package service

import (
	"context"

	"warden/internal/core/heuristics"
	"warden/internal/core/normalize"
	"warden/internal/core/translit"
	"warden/internal/platform/metrics"

	dom "warden/internal/services/scoring/domain"
)

// Service implements domain.ScorerPort
type Service struct {
	norm  *normalize.Normalizer
	heur  *heuristics.Scorer
	tierA dom.TierA
	tierB dom.TierB
}

// New constructs the scoring service
func New(norm *normalize.Normalizer, heur *heuristics.Scorer, tierA dom.TierA, tierB dom.TierB) *Service {
	return &Service{norm: norm, heur: heur, tierA: tierA, tierB: tierB}
}

// Score runs the full pipeline over one message.
// Fusion: score = tierA; if tierB present, score = max(score, tierB) and the
// category map gains a tier_b_used marker; then score += max(bonus over the
// transliterated form, bonus over the raw-normalized form). The two heuristic
// passes cover the same message in two spellings, so the larger one wins
// instead of summing. Final score clamps to 1.0
func (s *Service) Score(ctx context.Context, in dom.ScoreInput) dom.ScoredMessage {
	norm := s.norm.Normalize(in.Raw)
	ar := translit.ToArabic(norm)

	payload := ar
	if in.Context != "" {
		payload += "\n\nCONTEXT:\n" + in.Context
	}

	a := s.tierA.Moderate(ctx, payload)
	score := a.Score
	cats := a.Categories
	if cats == nil {
		cats = map[string]any{}
	}
	if a.Failed {
		// degraded neutral result; the marker lands in the audit detail
		cats["tier_a_failed"] = true
	}

	if b, ok := s.tierB.Infer(ctx, ar, in.Context); ok {
		if b.Score > score {
			score = b.Score
		}
		cats["tier_b_used"] = true
	}

	bonusAr := s.heur.Bonus(ar)
	bonusRaw := s.heur.Bonus(norm)
	if bonusRaw > bonusAr {
		bonusAr = bonusRaw
	}
	score += bonusAr

	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}

	metrics.FusedScore.Observe(score)

	return dom.ScoredMessage{
		Raw:            in.Raw,
		Normalized:     norm,
		Transliterated: ar,
		Context:        in.Context,
		Score:          score,
		Categories:     cats,
	}
}
