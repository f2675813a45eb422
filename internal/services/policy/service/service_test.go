package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"warden/internal/adapters/chat/discord"
	"warden/internal/platform/testkit"

	dom "warden/internal/services/policy/domain"
	scoringdom "warden/internal/services/scoring/domain"
)

type fakeChat struct {
	dms      []string
	channel  []string
	embeds   []discord.Embed
	embedTo  []string
	deleted  []string
	timeouts []time.Time
	bans     []string

	banErr   error
	embedErr error
}

func (f *fakeChat) SendDM(_ context.Context, _, content string) error {
	f.dms = append(f.dms, content)
	return nil
}

func (f *fakeChat) SendChannelMessage(_ context.Context, _, content string) error {
	f.channel = append(f.channel, content)
	return nil
}

func (f *fakeChat) SendChannelEmbed(_ context.Context, channelID string, e discord.Embed) error {
	if f.embedErr != nil {
		return f.embedErr
	}
	f.embedTo = append(f.embedTo, channelID)
	f.embeds = append(f.embeds, e)
	return nil
}

func (f *fakeChat) DeleteMessage(_ context.Context, _, messageID string) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeChat) TimeoutMember(_ context.Context, _, _ string, until time.Time, _ string) error {
	f.timeouts = append(f.timeouts, until)
	return nil
}

func (f *fakeChat) BanMember(_ context.Context, _, userID, _ string) error {
	if f.banErr != nil {
		return f.banErr
	}
	f.bans = append(f.bans, userID)
	return nil
}

func defaultCfg() dom.Config {
	return dom.Config{
		ThreshTempMute: 0.65,
		ThreshEscalate: 0.85,
		ThreshAutoBan:  0.95,

		DeleteMessage: true,
		WarnUser:      true,
		TempMute:      true,
		AutoBan:       false,

		MuteSeconds:       1800,
		ModQueueChannelID: "queue-1",
	}
}

func testMessage() discord.Message {
	return discord.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Author:    discord.User{ID: "u1", Username: "omar"},
		Content:   "ndrebouhom",
	}
}

func scored(score float64) scoringdom.ScoredMessage {
	return scoringdom.ScoredMessage{Score: score, Categories: map[string]any{"violence": true}}
}

func TestDecide_Table(t *testing.T) {
	tests := []struct {
		name    string
		score   float64
		autoBan bool
		want    dom.Decision
	}{
		{"below everything", 0.10, false, dom.DecisionNone},
		{"just under mute", 0.6499, false, dom.DecisionNone},
		{"mute boundary inclusive", 0.65, false, dom.DecisionWarnAndTimeout},
		{"mid band", 0.70, false, dom.DecisionWarnAndTimeout},
		{"escalate boundary inclusive", 0.85, false, dom.DecisionEscalate},
		{"high without auto ban", 0.99, false, dom.DecisionEscalate},
		{"ban boundary inclusive", 0.95, true, dom.DecisionAutoBan},
		{"just under ban", 0.9499, true, dom.DecisionEscalate},
		{"max", 1.0, true, dom.DecisionAutoBan},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultCfg()
			cfg.AutoBan = tc.autoBan
			s := New(&fakeChat{}, cfg)
			if got := s.Decide(tc.score); got != tc.want {
				t.Fatalf("Decide(%v) = %q, want %q", tc.score, got, tc.want)
			}
		})
	}
}

func TestExecute_None(t *testing.T) {
	chat := &fakeChat{}
	s := New(chat, defaultCfg())

	got := s.Execute(context.Background(), testMessage(), scored(0.10))
	if got != dom.DecisionNone {
		t.Fatalf("decision = %q", got)
	}
	if len(chat.dms)+len(chat.deleted)+len(chat.timeouts)+len(chat.bans) != 0 {
		t.Fatalf("no side effects expected, got %+v", chat)
	}
}

func TestExecute_WarnAndTimeout(t *testing.T) {
	chat := &fakeChat{}
	s := New(chat, defaultCfg())
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	got := s.Execute(context.Background(), testMessage(), scored(0.70))
	if got != dom.DecisionWarnAndTimeout {
		t.Fatalf("decision = %q", got)
	}
	if len(chat.dms) != 1 {
		t.Fatalf("expected one warn DM, got %d", len(chat.dms))
	}
	testkit.MustContain(t, chat.dms[0], "Warning")
	testkit.MustContain(t, chat.dms[0], testMessage().JumpURL())

	if len(chat.timeouts) != 1 {
		t.Fatalf("expected one timeout, got %d", len(chat.timeouts))
	}
	want := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	if !chat.timeouts[0].Equal(want) {
		t.Fatalf("timeout until = %v, want %v", chat.timeouts[0], want)
	}
	if len(chat.deleted) != 1 || chat.deleted[0] != "m1" {
		t.Fatalf("expected message delete, got %v", chat.deleted)
	}
}

func TestExecute_WarnFlagsOff(t *testing.T) {
	cfg := defaultCfg()
	cfg.WarnUser = false
	cfg.TempMute = false
	cfg.DeleteMessage = false
	chat := &fakeChat{}
	s := New(chat, cfg)

	got := s.Execute(context.Background(), testMessage(), scored(0.70))
	if got != dom.DecisionWarnAndTimeout {
		t.Fatalf("decision = %q", got)
	}
	if len(chat.dms)+len(chat.timeouts)+len(chat.deleted) != 0 {
		t.Fatalf("flags off should suppress side effects, got %+v", chat)
	}
}

func TestExecute_EscalatePostsEmbed(t *testing.T) {
	chat := &fakeChat{}
	s := New(chat, defaultCfg())

	got := s.Execute(context.Background(), testMessage(), scored(0.90))
	if got != dom.DecisionEscalate {
		t.Fatalf("decision = %q", got)
	}
	if len(chat.embeds) != 1 {
		t.Fatalf("expected one embed, got %d", len(chat.embeds))
	}
	if chat.embedTo[0] != "queue-1" {
		t.Fatalf("embed went to %q", chat.embedTo[0])
	}
	testkit.MustContain(t, chat.embeds[0].Title, "Incitement review needed")
	testkit.MustContain(t, chat.embeds[0].Description, "0.90")
	if len(chat.timeouts) != 1 {
		t.Fatalf("escalation should still mute when TempMute is on")
	}
}

func TestExecute_EscalateFallbackNotice(t *testing.T) {
	chat := &fakeChat{embedErr: errors.New("missing access")}
	s := New(chat, defaultCfg())

	got := s.Execute(context.Background(), testMessage(), scored(0.90))
	if got != dom.DecisionEscalate {
		t.Fatalf("decision = %q", got)
	}
	if len(chat.channel) != 1 {
		t.Fatalf("expected in-channel fallback notice, got %d", len(chat.channel))
	}
	testkit.MustContain(t, chat.channel[0], "couldn't post to the mod queue")
}

func TestExecute_EscalateUnconfiguredQueue(t *testing.T) {
	cfg := defaultCfg()
	cfg.ModQueueChannelID = ""
	chat := &fakeChat{}
	s := New(chat, cfg)

	s.Execute(context.Background(), testMessage(), scored(0.90))
	if len(chat.embeds) != 0 {
		t.Fatalf("no embed expected without a queue channel")
	}
	if len(chat.channel) != 1 {
		t.Fatalf("expected fallback notice")
	}
}

func TestExecute_AutoBan(t *testing.T) {
	cfg := defaultCfg()
	cfg.AutoBan = true
	chat := &fakeChat{}
	s := New(chat, cfg)

	got := s.Execute(context.Background(), testMessage(), scored(0.96))
	if got != dom.DecisionAutoBan {
		t.Fatalf("decision = %q", got)
	}
	if len(chat.bans) != 1 || chat.bans[0] != "u1" {
		t.Fatalf("expected ban of u1, got %v", chat.bans)
	}
	if len(chat.deleted) != 1 {
		t.Fatalf("ban should still delete the message")
	}
}

func TestExecute_BanFailureFallsBackToEscalation(t *testing.T) {
	cfg := defaultCfg()
	cfg.AutoBan = true
	chat := &fakeChat{banErr: errors.New("missing permissions")}
	s := New(chat, cfg)

	got := s.Execute(context.Background(), testMessage(), scored(0.96))
	if got != dom.DecisionEscalatedBanFailed {
		t.Fatalf("decision = %q, want escalated_ban_failed", got)
	}
	if len(chat.embeds) != 1 {
		t.Fatalf("fallback should escalate to the mod queue")
	}
}

func TestExecute_AutoBanDisabledHighScoreEscalates(t *testing.T) {
	chat := &fakeChat{}
	s := New(chat, defaultCfg())

	got := s.Execute(context.Background(), testMessage(), scored(0.99))
	if got != dom.DecisionEscalate {
		t.Fatalf("decision = %q, want escalate with auto ban off", got)
	}
	if len(chat.bans) != 0 {
		t.Fatalf("no ban expected with auto ban off")
	}
}
