// Package http provides audit review endpoints for moderators
package http

import (
	"net/http"

	"warden/internal/modkit/httpkit"
	"warden/internal/platform/net/http/bind"

	auditdom "warden/internal/services/audit/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Audit auditdom.ReaderPort
}

type handlers struct {
	deps Deps
}

// Register mounts the review routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/recent", h.recent)
}

// RecentResponse is the recent flags payload, newest first
type RecentResponse struct {
	Items []auditdom.Record `json:"items"`
	Count int               `json:"count"`
}

func (h *handlers) recent(r *http.Request) (any, error) {
	n, err := bind.QueryInt(r, "n", 5, 1, 100)
	if err != nil {
		return nil, err
	}
	recs, err := h.deps.Audit.Recent(r.Context(), n)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []auditdom.Record{}
	}
	return RecentResponse{Items: recs, Count: len(recs)}, nil
}
