package service

import (
	"context"
	"testing"
	"time"

	dom "warden/internal/services/audit/domain"
)

type memRepo struct {
	recs []dom.Record
}

func (m *memRepo) Append(_ context.Context, rec dom.Record) error {
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memRepo) Recent(_ context.Context, n int) ([]dom.Record, error) {
	if n > len(m.recs) {
		n = len(m.recs)
	}
	out := make([]dom.Record, 0, n)
	for i := len(m.recs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.recs[i])
	}
	return out, nil
}

func TestAppend_StampsMissingFields(t *testing.T) {
	repo := &memRepo{}
	s := New(repo)
	fixed := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if err := s.Append(context.Background(), dom.Record{Action: "escalate"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if len(repo.recs) != 1 {
		t.Fatalf("len = %d", len(repo.recs))
	}
	if repo.recs[0].ID == "" {
		t.Fatalf("id not stamped")
	}
	if !repo.recs[0].TS.Equal(fixed) {
		t.Fatalf("ts = %v, want %v", repo.recs[0].TS, fixed)
	}
}

func TestAppend_KeepsProvidedFields(t *testing.T) {
	repo := &memRepo{}
	s := New(repo)

	ts := time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)
	if err := s.Append(context.Background(), dom.Record{ID: "fixed-id", TS: ts}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if repo.recs[0].ID != "fixed-id" {
		t.Fatalf("id overwritten: %s", repo.recs[0].ID)
	}
	if !repo.recs[0].TS.Equal(ts) {
		t.Fatalf("ts overwritten: %v", repo.recs[0].TS)
	}
}

func TestRecent_Delegates(t *testing.T) {
	repo := &memRepo{recs: []dom.Record{{ID: "a"}, {ID: "b"}}}
	s := New(repo)

	got, err := s.Recent(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("got %+v", got)
	}
}
