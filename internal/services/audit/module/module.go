// Package module implements the audit service module
package module

import (
	"warden/internal/modkit"
	"warden/internal/modkit/httpkit"
	"warden/internal/services/audit/domain"
	"warden/internal/services/audit/repo"
	"warden/internal/services/audit/service"
)

// Ports exposed by the audit module
type Ports struct {
	Writer domain.WriterPort
	Reader domain.ReaderPort
}

// Module implements the audit service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new audit module
func New(deps modkit.Deps) *Module {
	path := deps.Cfg.MayString("AUDIT_LOG_PATH", "audit_incitement.jsonl")
	svc := service.New(repo.NewJSONL(path))

	m := &Module{deps: deps}
	m.ports = Ports{Writer: svc, Reader: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "audit" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
