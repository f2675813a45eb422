// Package repo implements the append-only JSONL audit store.
// One JSON object per line, no rotation, no indexing; the read path scans the
// whole file and takes a suffix. Fine at bot volume, not a storage design to
// generalize
package repo

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	perr "warden/internal/platform/errors"
	"warden/internal/platform/logger"

	dom "warden/internal/services/audit/domain"
)

// JSONL appends records to a flat file
type JSONL struct {
	path string
	mu   sync.Mutex
	log  logger.Logger
}

// NewJSONL creates a JSONL repo for path; the file is created lazily on first append
func NewJSONL(path string) *JSONL {
	return &JSONL{path: path, log: *logger.Named("audit")}
}

// Append writes one record as a single line.
// Line atomicity rides on O_APPEND semantics; the mutex keeps in-process
// writers from interleaving
func (j *JSONL) Append(_ context.Context, rec dom.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "audit encode record")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "audit open %s", j.path)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(raw, '\n')); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "audit write %s", j.path)
	}
	return nil
}

// Recent returns up to n records, newest first.
// Missing file is the defined empty state
func (j *JSONL) Recent(_ context.Context, n int) ([]dom.Record, error) {
	if n <= 0 {
		return []dom.Record{}, nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []dom.Record{}, nil
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "audit open %s", j.path)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if len(sc.Bytes()) > 0 {
			lines = append(lines, sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "audit scan %s", j.path)
	}

	out := make([]dom.Record, 0, n)
	for i := len(lines) - 1; i >= 0 && len(out) < n; i-- {
		var rec dom.Record
		if err := json.Unmarshal([]byte(lines[i]), &rec); err != nil {
			// a torn or hand-edited line should not break review
			j.log.Warn().Err(err).Int("line", i+1).Msg("skipping malformed audit line")
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
