package domain

import "context"

// WriterPort appends actioned-message records
type WriterPort interface {
	Append(ctx context.Context, rec Record) error
}

// ReaderPort serves the review surfaces (slash command, admin API)
type ReaderPort interface {
	// Recent returns up to n records, newest first.
	// A missing or empty log yields an empty slice, not an error
	Recent(ctx context.Context, n int) ([]Record, error)
}
