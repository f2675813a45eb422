// Package module wires the guard service: chat adapter, scoring pipeline,
// policy executor, and audit sink
package module

import (
	"context"

	"warden/internal/adapters/chat/discord"
	"warden/internal/adapters/classifier/custom"
	"warden/internal/adapters/classifier/openai"
	"warden/internal/core/heuristics"
	"warden/internal/core/lexicon"
	"warden/internal/core/normalize"
	"warden/internal/modkit"
	"warden/internal/modkit/httpkit"

	auditdom "warden/internal/services/audit/domain"
	auditmod "warden/internal/services/audit/module"
	guarddom "warden/internal/services/guard/domain"
	guardsvc "warden/internal/services/guard/service"
	policysvc "warden/internal/services/policy/service"
	scoringsvc "warden/internal/services/scoring/service"
)

// Ports exposed by the guard module
type Ports struct {
	Handler guarddom.HandlerPort
}

// Module implements the guard service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the guard module around an existing discord REST client
// and the audit module's ports
func New(deps modkit.Deps, chat *discord.Client, audit auditmod.Ports) *Module {
	opts := FromConfig(deps.Cfg)

	tierA := openai.NewClient(openai.Options{
		APIKey: deps.Cfg.MayString("OPENAI_API_KEY", ""),
	})
	tierB := custom.NewClient(custom.Options{
		Endpoint: deps.Cfg.MayString("TIERB_ENDPOINT", ""),
		Token:    deps.Cfg.MayString("TIERB_TOKEN", ""),
	})

	scorer := scoringsvc.New(normalize.New(), heuristics.New(lexicon.MustLoad()), tierA, tierB)
	policy := policysvc.New(chat, opts.Policy)

	svc := guardsvc.New(chat, scorer, policy, auditRW{audit}, opts.Guard)

	m := &Module{deps: deps}
	m.ports = Ports{Handler: svc}
	return m
}

// auditRW bundles the audit module ports into the guard's combined seam
type auditRW struct{ p auditmod.Ports }

func (a auditRW) Append(ctx context.Context, rec auditdom.Record) error {
	return a.p.Writer.Append(ctx, rec)
}

func (a auditRW) Recent(ctx context.Context, n int) ([]auditdom.Record, error) {
	return a.p.Reader.Recent(ctx, n)
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "guard" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
