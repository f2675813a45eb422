package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	perr "warden/internal/platform/errors"
	"warden/internal/platform/logger"
)

const (
	baseURLDefault = "https://discord.com/api/v10"
	defaultTimeout = 10 * time.Second
	defaultUA      = "warden-bot (https://github.com/warden, 0.1)"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
}

// StatusError is returned for non-2xx REST responses
type StatusError struct {
	Status int
	Body   string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("discord api status %d: %s", e.Status, e.Body)
}

// Client is a minimal Discord REST client for the actions the bot consumes
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
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("discord"),
	}
}

// do issues a JSON request and decodes the response into out when non-nil
func (c *Client) do(ctx context.Context, method, path string, in, out any, headers map[string]string) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "discord encode request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, body)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "discord new request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Authorization", "Bot "+c.opts.Token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "discord %s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, Body: string(raw)}
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUpstream, "discord decode %s", path)
		}
	}
	return nil
}

// SendDM opens (or reuses) the DM channel for userID and sends content
func (c *Client) SendDM(ctx context.Context, userID, content string) error {
	var ch struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/users/@me/channels",
		map[string]string{"recipient_id": userID}, &ch, nil)
	if err != nil {
		return err
	}
	return c.SendChannelMessage(ctx, ch.ID, content)
}

// SendChannelMessage posts plain content to a channel
func (c *Client) SendChannelMessage(ctx context.Context, channelID, content string) error {
	return c.do(ctx, http.MethodPost, "/channels/"+channelID+"/messages",
		map[string]string{"content": content}, nil, nil)
}

// SendChannelEmbed posts an embed to a channel
func (c *Client) SendChannelEmbed(ctx context.Context, channelID string, e Embed) error {
	return c.do(ctx, http.MethodPost, "/channels/"+channelID+"/messages",
		map[string]any{"embeds": []Embed{e}}, nil, nil)
}

// DeleteMessage removes a message
func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return c.do(ctx, http.MethodDelete, "/channels/"+channelID+"/messages/"+messageID, nil, nil, nil)
}

// TimeoutMember disables a member's communication until the given time
func (c *Client) TimeoutMember(ctx context.Context, guildID, userID string, until time.Time, reason string) error {
	return c.do(ctx, http.MethodPatch, "/guilds/"+guildID+"/members/"+userID,
		map[string]string{"communication_disabled_until": until.UTC().Format(time.RFC3339)},
		nil, auditReason(reason))
}

// BanMember bans a member from the guild
func (c *Client) BanMember(ctx context.Context, guildID, userID, reason string) error {
	return c.do(ctx, http.MethodPut, "/guilds/"+guildID+"/bans/"+userID,
		map[string]int{"delete_message_seconds": 0}, nil, auditReason(reason))
}

// ChannelHistory fetches up to limit messages, newest first
func (c *Client) ChannelHistory(ctx context.Context, channelID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}
	var out []Message
	path := fmt.Sprintf("/channels/%s/messages?limit=%d", channelID, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterGlobalCommand upserts an application slash command
func (c *Client) RegisterGlobalCommand(ctx context.Context, appID string, cmd Command) error {
	return c.do(ctx, http.MethodPost, "/applications/"+appID+"/commands", cmd, nil, nil)
}

// interaction callback type 4 = channel message with source
const callbackChannelMessage = 4

// ephemeral message flag
const flagEphemeral = 1 << 6

// RespondInteraction replies to a slash command, optionally ephemeral
func (c *Client) RespondInteraction(ctx context.Context, interactionID, token, content string, ephemeral bool) error {
	data := map[string]any{"content": content}
	if ephemeral {
		data["flags"] = flagEphemeral
	}
	return c.do(ctx, http.MethodPost,
		"/interactions/"+interactionID+"/"+url.PathEscape(token)+"/callback",
		map[string]any{"type": callbackChannelMessage, "data": data}, nil, nil)
}

// GatewayURL asks the API for the websocket endpoint
func (c *Client) GatewayURL(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/gateway/bot", nil, &out, nil); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", perr.Upstreamf("gateway url missing in response")
	}
	return out.URL, nil
}

func auditReason(reason string) map[string]string {
	if reason == "" {
		return nil
	}
	return map[string]string{"X-Audit-Log-Reason": url.PathEscape(reason)}
}
