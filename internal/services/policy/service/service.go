// Package service implements the graduated action policy
package service

import (
	"context"
	"fmt"
	"time"

	"warden/internal/adapters/chat/discord"
	"warden/internal/platform/logger"
	"warden/internal/platform/metrics"
	pstrings "warden/internal/platform/strings"

	dom "warden/internal/services/policy/domain"
	scoringdom "warden/internal/services/scoring/domain"
)

const actionReason = "suspected incitement to violence"

// embed accent for the escalation card
const escalateColor = 0xE67E22

// Service implements domain.ExecutorPort
type Service struct {
	chat dom.ChatPort
	cfg  dom.Config
	log  logger.Logger
	now  func() time.Time
}

// New constructs the policy service
func New(chat dom.ChatPort, cfg dom.Config) *Service {
	validate(cfg)
	return &Service{
		chat: chat,
		cfg:  cfg,
		log:  *logger.Named("policy"),
		now:  time.Now,
	}
}

// validate warns on a non-monotone threshold configuration
func validate(cfg dom.Config) {
	if cfg.ThreshTempMute > cfg.ThreshEscalate || cfg.ThreshEscalate > cfg.ThreshAutoBan {
		logger.Named("policy").Warn().
			Float64("temp_mute", cfg.ThreshTempMute).
			Float64("escalate", cfg.ThreshEscalate).
			Float64("auto_ban", cfg.ThreshAutoBan).
			Msg("thresholds are not monotone; actions may shadow each other")
	}
}

// Decide maps a fused score onto the threshold table, top-down.
// Pure function of (score, cfg); side effects live in Execute
func (s *Service) Decide(score float64) dom.Decision {
	switch {
	case score >= s.cfg.ThreshAutoBan && s.cfg.AutoBan:
		return dom.DecisionAutoBan
	case score >= s.cfg.ThreshEscalate:
		return dom.DecisionEscalate
	case score >= s.cfg.ThreshTempMute:
		return dom.DecisionWarnAndTimeout
	default:
		return dom.DecisionNone
	}
}

// Execute applies the decided actions for msg. Every chat failure is logged
// and absorbed; the one observable downgrade is ban -> escalated_ban_failed
func (s *Service) Execute(ctx context.Context, msg discord.Message, scored scoringdom.ScoredMessage) dom.Decision {
	decision := s.Decide(scored.Score)
	log := logger.C(ctx)

	switch decision {
	case dom.DecisionAutoBan:
		if err := s.chat.BanMember(ctx, msg.GuildID, msg.Author.ID, actionReason); err != nil {
			log.Warn().Err(err).Msg("ban failed; falling back to escalation")
			s.escalate(ctx, msg, scored)
			decision = dom.DecisionEscalatedBanFailed
		}

	case dom.DecisionEscalate:
		s.escalate(ctx, msg, scored)
		if s.cfg.TempMute {
			s.mute(ctx, msg)
		}

	case dom.DecisionWarnAndTimeout:
		if s.cfg.WarnUser {
			s.warn(ctx, msg)
		}
		if s.cfg.TempMute {
			s.mute(ctx, msg)
		}

	case dom.DecisionNone:
		metrics.DecisionsTotal.WithLabelValues("none").Inc()
		return decision
	}

	if s.cfg.DeleteMessage {
		if err := s.chat.DeleteMessage(ctx, msg.ChannelID, msg.ID); err != nil {
			log.Debug().Err(err).Msg("message delete failed")
		}
	}

	metrics.DecisionsTotal.WithLabelValues(string(decision)).Inc()
	return decision
}

// warn DMs the author; closed DMs are common, so failure is only a debug line
func (s *Service) warn(ctx context.Context, msg discord.Message) {
	text := "⚠️ **Warning / تحذير**: this message looks like incitement.\n" +
		"Please keep it peaceful and don't incite violence or war.\n" +
		"من فضلك خليك مسالم، وما تحرضش على العنف ولا الحرب.\n" +
		"Reference / المرجع: " + msg.JumpURL()
	if err := s.chat.SendDM(ctx, msg.Author.ID, text); err != nil {
		logger.C(ctx).Debug().Err(err).Msg("warn DM failed")
	}
}

// mute times the member out for the configured duration
func (s *Service) mute(ctx context.Context, msg discord.Message) {
	until := s.now().UTC().Add(time.Duration(s.cfg.MuteSeconds) * time.Second)
	if err := s.chat.TimeoutMember(ctx, msg.GuildID, msg.Author.ID, until, actionReason); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("failed to timeout member")
	}
}

// escalate posts the review embed to the mod queue, falling back to an
// in-channel notice when the queue is unreachable
func (s *Service) escalate(ctx context.Context, msg discord.Message, scored scoringdom.ScoredMessage) {
	log := logger.C(ctx)

	embed := discord.Embed{
		Title: "⚠️ Incitement review needed",
		Description: fmt.Sprintf("**Channel:** <#%s>\n**Score:** %.2f\n**Jump:** [link](%s)",
			msg.ChannelID, scored.Score, msg.JumpURL()),
		Color: escalateColor,
		Fields: []discord.EmbedField{
			{
				Name: "Author",
				Value: fmt.Sprintf("<@%s>\nUsername: %s (ID: %s)",
					msg.Author.ID, msg.Author.Username, msg.Author.ID),
			},
			{
				Name:  "Message",
				Value: orPlaceholder(pstrings.Truncate(msg.Content, 800)),
			},
			{
				Name:  "Details",
				Value: fmt.Sprintf("Categories: %v", scored.Categories),
			},
		},
	}

	err := s.sendToQueue(ctx, embed)
	if err == nil {
		return
	}
	log.Warn().Err(err).Msg("escalation failed")

	notice := fmt.Sprintf("🛡️ I couldn't post to the mod queue (%v). "+
		"Please check the mod queue channel id and permissions.", err)
	if nerr := s.chat.SendChannelMessage(ctx, msg.ChannelID, notice); nerr != nil {
		log.Warn().Err(nerr).Msg("escalation fallback notice failed")
	}
}

func (s *Service) sendToQueue(ctx context.Context, embed discord.Embed) error {
	if s.cfg.ModQueueChannelID == "" {
		return fmt.Errorf("mod queue channel not configured")
	}
	return s.chat.SendChannelEmbed(ctx, s.cfg.ModQueueChannelID, embed)
}

func orPlaceholder(s string) string {
	if s == "" {
		return "*<no text>*"
	}
	return s
}
