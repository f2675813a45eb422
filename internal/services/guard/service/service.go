// Package service implements the guard event loop: score incoming messages,
// apply policy, write audit, and answer the admin slash command
package service

import (
	"context"
	"fmt"
	"strings"

	"warden/internal/adapters/chat/discord"
	"warden/internal/platform/logger"
	pstrings "warden/internal/platform/strings"

	auditdom "warden/internal/services/audit/domain"
	dom "warden/internal/services/guard/domain"
	policydom "warden/internal/services/policy/domain"
	scoringdom "warden/internal/services/scoring/domain"
)

// command is the admin slash command name
const command = "incitement"

// defaultReviewN is how many audit entries review shows when n is omitted
const defaultReviewN = 5

// Config is the immutable guard configuration built at startup
type Config struct {
	// OwnerUserID always passes the admin check
	OwnerUserID string
	// ContextWindow is how many prior messages feed the classifier context block
	ContextWindow int
}

// Service implements domain.HandlerPort
type Service struct {
	chat   dom.ChatPort
	scorer scoringdom.ScorerPort
	policy policydom.ExecutorPort
	audit  auditWriterReader
	cfg    Config
	log    logger.Logger
}

type auditWriterReader interface {
	auditdom.WriterPort
	auditdom.ReaderPort
}

// New constructs the guard service
func New(
	chat dom.ChatPort,
	scorer scoringdom.ScorerPort,
	policy policydom.ExecutorPort,
	audit auditWriterReader,
	cfg Config,
) *Service {
	return &Service{
		chat:   chat,
		scorer: scorer,
		policy: policy,
		audit:  audit,
		cfg:    cfg,
		log:    *logger.Named("guard"),
	}
}

// OnMessage runs the scoring pipeline for one incoming message.
// Bots, DMs, and empty content are skipped before any network call
func (s *Service) OnMessage(ctx context.Context, m discord.Message) {
	if m.Author.Bot || m.GuildID == "" || strings.TrimSpace(m.Content) == "" {
		return
	}
	ctx = logger.WithMessage(ctx, m.GuildID, m.ChannelID, m.ID)
	log := logger.C(ctx)

	snippet := s.contextSnippet(ctx, m)

	scored := s.scorer.Score(ctx, scoringdom.ScoreInput{Raw: m.Content, Context: snippet})
	log.Debug().Float64("score", scored.Score).Msg("message scored")

	decision := s.policy.Execute(ctx, m, scored)
	if decision == policydom.DecisionNone {
		return
	}

	err := s.audit.Append(ctx, auditdom.Record{
		GuildID:    m.GuildID,
		ChannelID:  m.ChannelID,
		MessageID:  m.ID,
		AuthorID:   m.Author.ID,
		AuthorName: m.Author.DisplayName(),
		Score:      scored.Score,
		Details:    scored.Categories,
		Text:       m.Content,
		Normalized: scored.Transliterated,
		Context:    snippet,
		Action:     string(decision),
		JumpURL:    m.JumpURL(),
	})
	if err != nil {
		log.Error().Err(err).Msg("audit append failed")
	}
}

// contextSnippet fetches the last ContextWindow messages before m and joins
// them oldest-first as "Name: content" lines. Any fetch failure degrades to
// an empty context
func (s *Service) contextSnippet(ctx context.Context, m discord.Message) string {
	n := s.cfg.ContextWindow
	if n <= 0 {
		return ""
	}
	history, err := s.chat.ChannelHistory(ctx, m.ChannelID, n+1)
	if err != nil {
		logger.C(ctx).Debug().Err(err).Msg("history fetch failed; scoring without context")
		return ""
	}

	var lines []string
	for _, h := range history { // newest first
		if h.ID == m.ID {
			continue
		}
		lines = append(lines, h.Author.DisplayName()+": "+h.Content)
		if len(lines) >= n {
			break
		}
	}
	// oldest first for the classifier
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return strings.Join(lines, "\n")
}

// OnInteraction handles the admin slash command
func (s *Service) OnInteraction(ctx context.Context, i discord.Interaction) {
	if i.Data.Name != command {
		return
	}

	if !s.authorized(i) {
		s.respond(ctx, i, "Unauthorized.")
		return
	}

	switch strings.ToLower(i.StringOption("action")) {
	case "review":
		s.respond(ctx, i, s.reviewBody(ctx, i.IntOption("n", defaultReviewN)))
	default:
		s.respond(ctx, i, "Unknown action.")
	}
}

// authorized passes the configured owner or any Manage Guild holder
func (s *Service) authorized(i discord.Interaction) bool {
	if s.cfg.OwnerUserID != "" && i.Caller().ID == s.cfg.OwnerUserID {
		return true
	}
	return i.Member != nil && discord.HasManageGuild(i.Member.Permissions)
}

// reviewBody formats the last n audit entries
func (s *Service) reviewBody(ctx context.Context, n int) string {
	recs, err := s.audit.Recent(ctx, n)
	if err != nil {
		s.log.Error().Err(err).Msg("audit read failed")
		return "Could not read the audit log."
	}
	if len(recs) == 0 {
		return "No audit entries yet."
	}

	var out []string
	for _, it := range recs {
		preview := strings.ReplaceAll(pstrings.Truncate(it.Text, 120), "`", "")
		out = append(out, fmt.Sprintf(
			"- **%s** in <#%s> — score `%.2f` — [jump](%s)\n  `%s`",
			it.AuthorName, it.ChannelID, it.Score, it.JumpURL, preview,
		))
	}
	return strings.Join(out, "\n")
}

func (s *Service) respond(ctx context.Context, i discord.Interaction, content string) {
	if err := s.chat.RespondInteraction(ctx, i.ID, i.Token, content, true); err != nil {
		s.log.Warn().Err(err).Msg("interaction response failed")
	}
}

// RegisterCommands upserts the admin slash command once the gateway is ready
func (s *Service) RegisterCommands(ctx context.Context, appID string) {
	err := s.chat.RegisterGlobalCommand(ctx, appID, discord.Command{
		Name:        command,
		Description: "Admin tools for incitement moderation.",
		Options: []discord.CommandOption{
			{Type: discord.OptionString, Name: "action", Description: "review: show last N flags", Required: true},
			{Type: discord.OptionInteger, Name: "n", Description: "how many items to show (default 5)"},
		},
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("slash command registration failed")
	}
}
