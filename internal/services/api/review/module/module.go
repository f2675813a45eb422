// Package module wires the audit review endpoints into the API
package module

import (
	"warden/internal/modkit"
	"warden/internal/modkit/httpkit"

	reviewhttp "warden/internal/services/api/review/http"
	auditdom "warden/internal/services/audit/domain"
)

// Ports declares the injected audit reader this module serves from
type Ports struct {
	Audit auditdom.ReaderPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	name  string
	audit auditdom.ReaderPort
}

// New constructs a review module; the audit reader arrives via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	name, ports := modkit.Build(append([]modkit.Option{modkit.WithName("review")}, opts...)...)

	p, ok := ports.(Ports)
	if !ok || p.Audit == nil {
		panic("review module requires Audit reader port (from services/audit)")
	}
	return &Module{deps: deps, name: name, audit: p.Audit}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route("/review", func(rr httpkit.Router) {
		reviewhttp.Register(rr, reviewhttp.Deps{Audit: m.audit})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
