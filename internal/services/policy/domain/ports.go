package domain

import (
	"context"
	"time"

	"warden/internal/adapters/chat/discord"
	scoringdom "warden/internal/services/scoring/domain"
)

// ExecutorPort decides and applies moderation actions for a scored message
type ExecutorPort interface {
	// Execute returns the final decision label after side effects
	// (a failed ban downgrades to escalated_ban_failed)
	Execute(ctx context.Context, msg discord.Message, scored scoringdom.ScoredMessage) Decision
}

// ChatPort is the subset of platform actions the policy consumes.
// All calls are best-effort from the policy's point of view
type ChatPort interface {
	SendDM(ctx context.Context, userID, content string) error
	SendChannelMessage(ctx context.Context, channelID, content string) error
	SendChannelEmbed(ctx context.Context, channelID string, e discord.Embed) error
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	TimeoutMember(ctx context.Context, guildID, userID string, until time.Time, reason string) error
	BanMember(ctx context.Context, guildID, userID, reason string) error
}
