package domain

import (
	"context"

	"warden/internal/adapters/classifier/custom"
	"warden/internal/adapters/classifier/openai"
)

// ScorerPort is the external port for the scoring pipeline
type ScorerPort interface {
	// Score never fails; classifier trouble degrades to neutral signals
	Score(ctx context.Context, in ScoreInput) ScoredMessage
}

// TierA is the primary classifier seam (fail-open, see the openai adapter)
type TierA interface {
	Moderate(ctx context.Context, text string) openai.Result
}

// TierB is the optional secondary classifier seam
type TierB interface {
	Infer(ctx context.Context, text, contextText string) (custom.Result, bool)
}
