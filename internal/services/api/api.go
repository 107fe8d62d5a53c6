// Package api provides the HTTP API for the application
package api

import (
	"net/http"

	"demovault/internal/platform/config"
	"demovault/internal/platform/logger"
	phttp "demovault/internal/platform/net/http"
	"demovault/internal/platform/store"

	"demovault/internal/modkit"
	"demovault/internal/modkit/httpkit"
	"demovault/internal/modkit/module"
	"demovault/internal/modkit/swaggerkit"

	demosmod "demovault/internal/services/demos/module"
	metamod "demovault/internal/services/meta/module"
	quotamod "demovault/internal/services/quota/module"
)

// standingGuard bounces suspended accounts before protected handlers run
type standingGuard struct{ accounts quotamod.AccountsPort }

func (g standingGuard) Validate(r *http.Request, accountID string) error {
	return g.accounts.CheckStanding(r.Context(), accountID)
}

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// quota first; it owns the account table and the api key resolver
	quota := quotamod.New(deps)
	qports := module.MustPortsOf[quotamod.Ports](quota)

	demos := demosmod.New(deps, modkit.WithPorts(demosmod.Ports{
		Quota:    qports.Guard,
		Accounts: qports.Accounts,
	}))
	dports := module.MustPortsOf[demosmod.ExposedPorts](demos)

	meta := metamod.New(deps, dports.Queue)

	authPort := httpkit.NewPortFunc(qports.Accounts.ResolveAPIKey)

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		module.Register(quota.Name(), quota.Ports())
		module.Register(demos.Name(), demos.Ports())
		module.Register(meta.Name(), meta.Ports())

		// probes stay open, everything else requires an api key
		meta.MountRoutes(api)
		guard := standingGuard{accounts: qports.Accounts}
		httpkit.Protected(api, authPort, guard, func(pr httpkit.Router) {
			quota.MountRoutes(pr)
			demos.MountRoutes(pr)
		})
	})
}
