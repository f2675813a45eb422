package service

import (
	"context"
	"testing"

	"warden/internal/adapters/classifier/custom"
	"warden/internal/adapters/classifier/openai"
	"warden/internal/core/heuristics"
	"warden/internal/core/lexicon"
	"warden/internal/core/normalize"
	"warden/internal/platform/testkit"

	dom "warden/internal/services/scoring/domain"
)

type fakeTierA struct {
	res      openai.Result
	lastSeen string
}

func (f *fakeTierA) Moderate(_ context.Context, text string) openai.Result {
	f.lastSeen = text
	return f.res
}

type fakeTierB struct {
	res custom.Result
	ok  bool
}

func (f *fakeTierB) Infer(_ context.Context, _, _ string) (custom.Result, bool) {
	return f.res, f.ok
}

func newService(a *fakeTierA, b *fakeTierB) *Service {
	return New(normalize.New(), heuristics.New(lexicon.MustLoad()), a, b)
}

func TestScore_TierAOnly(t *testing.T) {
	a := &fakeTierA{res: openai.Result{Score: 0.5, Categories: map[string]any{"violence": true}}}
	s := newService(a, &fakeTierB{})

	out := s.Score(context.Background(), dom.ScoreInput{Raw: "salam khouya"})
	testkit.NearlyEqual(t, out.Score, 0.5, 1e-9)
	if _, ok := out.Categories["tier_b_used"]; ok {
		t.Fatalf("tier_b_used set without tier b")
	}
	if _, ok := out.Categories["tier_a_failed"]; ok {
		t.Fatalf("tier_a_failed set on a healthy result")
	}
}

func TestScore_TierBRaisesViaMax(t *testing.T) {
	a := &fakeTierA{res: openai.Result{Score: 0.5}}
	b := &fakeTierB{res: custom.Result{Score: 0.8}, ok: true}
	s := newService(a, b)

	out := s.Score(context.Background(), dom.ScoreInput{Raw: "salam"})
	testkit.NearlyEqual(t, out.Score, 0.8, 1e-9)
	if used, _ := out.Categories["tier_b_used"].(bool); !used {
		t.Fatalf("tier_b_used marker missing")
	}
}

func TestScore_TierBLowerKeepsTierA(t *testing.T) {
	a := &fakeTierA{res: openai.Result{Score: 0.5}}
	b := &fakeTierB{res: custom.Result{Score: 0.3}, ok: true}
	s := newService(a, b)

	out := s.Score(context.Background(), dom.ScoreInput{Raw: "salam"})
	testkit.NearlyEqual(t, out.Score, 0.5, 1e-9)
	if used, _ := out.Categories["tier_b_used"].(bool); !used {
		t.Fatalf("tier_b_used marker missing even though tier b answered")
	}
}

// the same lexemes can match in both spellings; the larger single-pass bonus
// applies, the two passes never sum
func TestScore_HeuristicBonusIsMaxOfForms(t *testing.T) {
	a := &fakeTierA{res: openai.Result{Score: 0}}
	s := newService(a, &fakeTierB{})

	// normalized form matches dreb and ntel (0.14); the transliterated form
	// loses the ntel match because 9 becomes Arabic script
	out := s.Score(context.Background(), dom.ScoreInput{Raw: "ndrebouhom n9tlhom"})
	testkit.NearlyEqual(t, out.Score, 0.14, 1e-9)
}

func TestScore_ClampsToOne(t *testing.T) {
	a := &fakeTierA{res: openai.Result{Score: 0.95}}
	s := newService(a, &fakeTierB{})

	out := s.Score(context.Background(), dom.ScoreInput{Raw: "ndrebouhom n9tlhom"})
	testkit.NearlyEqual(t, out.Score, 1.0, 1e-9)
}

func TestScore_FailedTierAIsNeutral(t *testing.T) {
	a := &fakeTierA{res: openai.Result{Score: 0, Categories: map[string]any{"violence": false}, Failed: true}}
	s := newService(a, &fakeTierB{})

	out := s.Score(context.Background(), dom.ScoreInput{Raw: "salam khouya"})
	testkit.NearlyEqual(t, out.Score, 0, 1e-9)
	if failed, _ := out.Categories["tier_a_failed"].(bool); !failed {
		t.Fatalf("tier_a_failed marker missing on degraded result")
	}
}

func TestScore_ContextFeedsClassifierPayload(t *testing.T) {
	a := &fakeTierA{}
	s := newService(a, &fakeTierB{})

	s.Score(context.Background(), dom.ScoreInput{Raw: "chno had chi", Context: "Omar: salam"})
	testkit.MustContain(t, a.lastSeen, "CONTEXT:\nOmar: salam")
}

func TestScore_NoContextNoMarker(t *testing.T) {
	a := &fakeTierA{}
	s := newService(a, &fakeTierB{})

	s.Score(context.Background(), dom.ScoreInput{Raw: "chno"})
	if a.lastSeen != "شno" {
		t.Fatalf("payload = %q, want bare transliteration", a.lastSeen)
	}
}

func TestScore_CarriesForms(t *testing.T) {
	a := &fakeTierA{}
	s := newService(a, &fakeTierB{})

	out := s.Score(context.Background(), dom.ScoreInput{Raw: "  7na   hna  "})
	if out.Raw != "  7na   hna  " {
		t.Fatalf("Raw = %q", out.Raw)
	}
	if out.Normalized != "7na hna" {
		t.Fatalf("Normalized = %q", out.Normalized)
	}
	if out.Transliterated != "حna hna" {
		t.Fatalf("Transliterated = %q", out.Transliterated)
	}
}
