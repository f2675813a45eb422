// Package domain defines the core types and interfaces for the scoring service
package domain

// ScoreInput is the per-message payload the pipeline scores
type ScoreInput struct {
	// Raw is the message text exactly as received
	Raw string
	// Context is the joined recent-conversation snippet block, may be empty
	Context string
}

// ScoredMessage is the transient result of one pipeline run.
// Created per incoming message, logged if actioned, then discarded
type ScoredMessage struct {
	Raw            string
	Normalized     string
	Transliterated string
	Context        string

	// Score is the fused incitement score, clamped to [0,1]
	Score float64
	// Categories is the classifier detail payload (labels, sub-scores, markers)
	Categories map[string]any
}
