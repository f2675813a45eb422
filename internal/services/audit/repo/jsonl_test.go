package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	dom "warden/internal/services/audit/domain"
)

func tempRepo(t *testing.T) *JSONL {
	t.Helper()
	return NewJSONL(filepath.Join(t.TempDir(), "audit.jsonl"))
}

func record(id string, score float64) dom.Record {
	return dom.Record{
		ID:         id,
		TS:         time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		GuildID:    "g1",
		ChannelID:  "c1",
		MessageID:  "m-" + id,
		AuthorID:   "u1",
		AuthorName: "omar",
		Score:      score,
		Text:       "ndrebouhom",
		Normalized: "ndrebouhom",
		Action:     "escalate",
		JumpURL:    "https://discord.com/channels/g1/c1/m-" + id,
	}
}

func TestRecent_MissingFileIsEmpty(t *testing.T) {
	j := tempRepo(t)
	got, err := j.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty, got %d records", len(got))
	}
}

func TestAppendThenRecent_NewestFirst(t *testing.T) {
	j := tempRepo(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := j.Append(ctx, record(id, 0.9)); err != nil {
			t.Fatalf("Append %s: %v", id, err)
		}
	}

	got, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("order = %s,%s want c,b", got[0].ID, got[1].ID)
	}
}

func TestRecent_NonPositiveN(t *testing.T) {
	j := tempRepo(t)
	if err := j.Append(context.Background(), record("a", 0.9)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, err := j.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("n=0 should return nothing, got %d", len(got))
	}
}

func TestRecent_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.jsonl")
	j := NewJSONL(path)
	ctx := context.Background()

	if err := j.Append(ctx, record("a", 0.7)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("{not json\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = f.Close()
	if err := j.Append(ctx, record("b", 0.8)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (malformed line skipped)", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("order = %s,%s want b,a", got[0].ID, got[1].ID)
	}
}

func TestAppend_RoundTripsFields(t *testing.T) {
	j := tempRepo(t)
	ctx := context.Background()

	in := record("a", 0.87)
	in.Details = map[string]any{"tier_b_used": true}
	in.Context = "Omar: salam"
	if err := j.Append(ctx, in); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := j.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d", len(got))
	}
	out := got[0]
	if out.ID != in.ID || out.Score != in.Score || out.Action != in.Action {
		t.Fatalf("round trip mismatch: %+v", out)
	}
	if out.Context != "Omar: salam" {
		t.Fatalf("ctx = %q", out.Context)
	}
	if used, _ := out.Details["tier_b_used"].(bool); !used {
		t.Fatalf("details lost: %+v", out.Details)
	}
	if !out.TS.Equal(in.TS) {
		t.Fatalf("ts = %v, want %v", out.TS, in.TS)
	}
}
