// Package api provides the admin HTTP API for the moderation service
package api

import (
	"warden/internal/modkit"
	"warden/internal/modkit/httpkit"
	"warden/internal/modkit/module"
	"warden/internal/platform/config"
	"warden/internal/platform/metrics"
	phttp "warden/internal/platform/net/http"

	metamod "warden/internal/services/api/meta/module"
	reviewmod "warden/internal/services/api/review/module"
	auditmod "warden/internal/services/audit/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	// Token guards the review endpoints; empty disables auth
	Token string
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}

	// audit module owns the flat file; register its ports so the review module
	// resolves the reader through the registry like any cross module wiring
	audit := auditmod.New(deps)
	module.Register(audit.Name(), audit.Ports())

	ap, ok := module.PortsAs[auditmod.Ports](audit.Name())
	if !ok {
		panic("api: audit ports not registered")
	}

	mods := []module.Module{
		metamod.New(deps),
		reviewmod.New(deps, modkit.WithPorts(reviewmod.Ports{Audit: ap.Reader})),
	}

	mw := httpkit.CommonStack()
	if opt.Token != "" {
		mw = append(mw, httpkit.Bearer(opt.Token))
	}

	httpkit.MountAPIV1(r, mw, func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	// prometheus scrape endpoint stays outside the versioned tree
	r.Handle("/metrics", metrics.Handler())
}
