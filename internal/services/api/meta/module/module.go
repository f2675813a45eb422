// Package module wires meta endpoints into the API
package module

import (
	"time"

	"warden/internal/modkit"
	"warden/internal/modkit/httpkit"

	metahttp "warden/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	startedAt time.Time
}

// New constructs a meta module
func New(deps modkit.Deps) *Module {
	return &Module{deps: deps, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route("/meta", func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: "warden-api",
			StartedAt:   m.startedAt,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return "meta" }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
