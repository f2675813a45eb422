// Package openai provides the Tier-A moderation classifier adapter.
// Every failure path degrades to a neutral zero score: an unavailable
// classifier must never block the message pipeline
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"warden/internal/platform/logger"
	"warden/internal/platform/metrics"
)

const (
	baseURLDefault = "https://api.openai.com"
	defaultModel   = "omni-moderation-latest"
	defaultTimeout = 15 * time.Second
	defaultUA      = "warden-bot"

	// maxInputChars bounds the payload sent upstream
	maxInputChars = 20000
)

// violence-adjacent category keys whose max becomes the returned score
var violenceKeys = []string{
	"violence",
	"violence/graphic",
	"harassment/threatening",
	"illicit/violent",
}

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	Model     string
	UserAgent string
	Timeout   time.Duration
}

// Result is the explicit outcome of a moderation call.
// Failed marks a degraded (neutral) result so fusion can count it without guessing
type Result struct {
	Score      float64
	Categories map[string]any
	Failed     bool
}

// neutral is the fail-open result
func neutral() Result {
	return Result{Score: 0, Categories: map[string]any{"violence": false}, Failed: true}
}

// Client calls the moderations endpoint
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("tier_a"),
	}
}

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Categories     map[string]bool    `json:"categories"`
		CategoryScores map[string]float64 `json:"category_scores"`
	} `json:"results"`
}

// Moderate classifies text and returns the max violence-adjacent sub-score
// plus the raw category map. Never returns an error: failures yield the
// neutral result with Failed set
func (c *Client) Moderate(ctx context.Context, text string) Result {
	if strings.TrimSpace(c.opts.APIKey) == "" {
		c.log.Debug().Msg("no api key configured; returning neutral score")
		metrics.ClassifierFailures.WithLabelValues("a").Inc()
		return neutral()
	}

	body, err := json.Marshal(moderationRequest{
		Model: c.opts.Model,
		Input: truncate(text, maxInputChars),
	})
	if err != nil {
		metrics.ClassifierFailures.WithLabelValues("a").Inc()
		return neutral()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/v1/moderations", bytes.NewReader(body))
	if err != nil {
		metrics.ClassifierFailures.WithLabelValues("a").Inc()
		return neutral()
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("moderation call failed; returning neutral score")
		metrics.ClassifierFailures.WithLabelValues("a").Inc()
		return neutral()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Int("status", resp.StatusCode).Msg("moderation non-2xx; returning neutral score")
		metrics.ClassifierFailures.WithLabelValues("a").Inc()
		return neutral()
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		metrics.ClassifierFailures.WithLabelValues("a").Inc()
		return neutral()
	}

	var mr moderationResponse
	if err := json.Unmarshal(raw, &mr); err != nil || len(mr.Results) == 0 {
		c.log.Warn().Err(err).Msg("malformed moderation response; returning neutral score")
		metrics.ClassifierFailures.WithLabelValues("a").Inc()
		return neutral()
	}

	out := mr.Results[0]
	score := 0.0
	for _, k := range violenceKeys {
		if v, ok := out.CategoryScores[k]; ok && v > score {
			score = v
		}
	}
	cats := make(map[string]any, len(out.Categories))
	for k, v := range out.Categories {
		cats[k] = v
	}
	return Result{Score: score, Categories: cats}
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
