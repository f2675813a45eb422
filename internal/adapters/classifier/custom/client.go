// Package custom provides the optional Tier-B incitement classifier adapter.
// A user-configured HTTP endpoint returns an incitement score for {text, context}.
// Absent endpoint or any failure yields absent, same fail-open rationale as Tier A
package custom

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

const defaultTimeout = 3 * time.Second

// Options configures the Client
type Options struct {
	// Endpoint empty means Tier B is disabled
	Endpoint string
	// Token adds a bearer header when set
	Token   string
	Timeout time.Duration
}

// Result is a clamped incitement score from the secondary classifier
type Result struct {
	Score float64
}

// Client calls the configured endpoint with a fixed short timeout
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client; a nil-safe zero client is returned when no endpoint is set
func NewClient(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("tier_b"),
	}
}

// Enabled reports whether an endpoint is configured
func (c *Client) Enabled() bool { return strings.TrimSpace(c.opts.Endpoint) != "" }

type inferRequest struct {
	Text    string `json:"text"`
	Context string `json:"context"`
}

// inferResponse accepts either of the two score field names in the wild
type inferResponse struct {
	IncitementScore *float64 `json:"incitement_score"`
	Score           *float64 `json:"score"`
}

// Infer returns (result, true) on success, (zero, false) when disabled or on
// any failure (timeout, non-2xx, malformed body)
func (c *Client) Infer(ctx context.Context, text, contextText string) (Result, bool) {
	if !c.Enabled() {
		return Result{}, false
	}

	body, err := json.Marshal(inferRequest{Text: text, Context: contextText})
	if err != nil {
		return Result{}, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, false
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("tier b call failed; treating as absent")
		metrics.ClassifierFailures.WithLabelValues("b").Inc()
		return Result{}, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Int("status", resp.StatusCode).Msg("tier b non-2xx; treating as absent")
		metrics.ClassifierFailures.WithLabelValues("b").Inc()
		return Result{}, false
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		metrics.ClassifierFailures.WithLabelValues("b").Inc()
		return Result{}, false
	}

	var ir inferResponse
	if err := json.Unmarshal(raw, &ir); err != nil {
		c.log.Warn().Err(err).Msg("malformed tier b response; treating as absent")
		metrics.ClassifierFailures.WithLabelValues("b").Inc()
		return Result{}, false
	}

	var score float64
	switch {
	case ir.IncitementScore != nil:
		score = *ir.IncitementScore
	case ir.Score != nil:
		score = *ir.Score
	default:
		metrics.ClassifierFailures.WithLabelValues("b").Inc()
		return Result{}, false
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return Result{Score: score}, true
}
