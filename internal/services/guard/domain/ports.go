// Package domain defines the guard (event loop) service ports
package domain

import (
	"context"

	"warden/internal/adapters/chat/discord"
)

// HandlerPort is the external surface the gateway wires into
type HandlerPort interface {
	OnMessage(ctx context.Context, m discord.Message)
	OnInteraction(ctx context.Context, i discord.Interaction)
	RegisterCommands(ctx context.Context, appID string)
}

// ChatPort is the subset of platform calls the guard itself consumes
// (actions on offending messages live behind the policy's own port)
type ChatPort interface {
	ChannelHistory(ctx context.Context, channelID string, limit int) ([]discord.Message, error)
	RespondInteraction(ctx context.Context, interactionID, token, content string, ephemeral bool) error
	RegisterGlobalCommand(ctx context.Context, appID string, cmd discord.Command) error
}
