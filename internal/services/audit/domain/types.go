// Package domain defines the audit record types and ports
package domain

import "time"

// Record is one immutable audit entry, one JSON object per line in the log.
// Field names stay wire-stable; "normalized" holds the transliterated form
// and "ctx" the conversation snippet, matching the historical log format
type Record struct {
	ID         string         `json:"id"`
	TS         time.Time      `json:"ts"`
	GuildID    string         `json:"guild_id"`
	ChannelID  string         `json:"channel_id"`
	MessageID  string         `json:"message_id"`
	AuthorID   string         `json:"author_id"`
	AuthorName string         `json:"author_name"`
	Score      float64        `json:"score"`
	Details    map[string]any `json:"details,omitempty"`
	Text       string         `json:"text"`
	Normalized string         `json:"normalized"`
	Context    string         `json:"ctx,omitempty"`
	Action     string         `json:"action"`
	JumpURL    string         `json:"jump_url"`
}
