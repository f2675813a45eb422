// Package service implements the audit sink service
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	dom "warden/internal/services/audit/domain"
)

// Repo is the storage seam the service writes through
type Repo interface {
	dom.WriterPort
	dom.ReaderPort
}

// Svc stamps ids/timestamps and delegates to the repo
type Svc struct {
	repo Repo
	now  func() time.Time
}

// New constructs the audit service
func New(repo Repo) *Svc {
	return &Svc{repo: repo, now: time.Now}
}

// Append stamps missing id/ts fields then persists the record
func (s *Svc) Append(ctx context.Context, rec dom.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.TS.IsZero() {
		rec.TS = s.now().UTC()
	}
	return s.repo.Append(ctx, rec)
}

// Recent proxies the read path
func (s *Svc) Recent(ctx context.Context, n int) ([]dom.Record, error) {
	return s.repo.Recent(ctx, n)
}
