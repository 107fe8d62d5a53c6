// Package module wires the ingestion pipeline into the API using modkit
package module

import (
	"context"
	"net/http"

	"demovault/internal/adapters/blobstore"
	"demovault/internal/adapters/queue"
	"demovault/internal/adapters/steam"
	modkit "demovault/internal/modkit"
	"demovault/internal/modkit/httpkit"
	str "demovault/internal/platform/strings"
	demohttp "demovault/internal/services/demos/http"
	demorepo "demovault/internal/services/demos/repo"
	demosvc "demovault/internal/services/demos/service"
	matchsvc "demovault/internal/services/matches/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *demosvc.Svc
}

// New constructs a demos module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("demos"),
		modkit.WithPrefix("/demos"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Quota == nil || injected.Accounts == nil {
		panic("demos module requires Quota and Accounts ports (from services/quota)")
	}

	steamc := steam.NewClient(steam.Options{
		BaseURL:   cfg.SteamBaseURL,
		UserAgent: cfg.SteamUA,
		Timeout:   cfg.SteamTimeout,
		APIKey:    cfg.SteamAPIKey,
	})
	matches := matchsvc.New(steamc, matchsvc.Config{
		MaxSteps: cfg.WalkMaxSteps,
		Pause:    cfg.WalkPause,
	})

	jobs := queue.New(queue.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Key:      cfg.QueueKey,
	})

	d := demosvc.Deps{
		DB:      deps.PG,
		Binder:  demorepo.NewPG(),
		Matches: matches,
		Quota:   injected.Quota,
		Creds:   injected.Accounts,
		Jobs:    jobs,
		Dir:     cfg.Dir,
	}

	if cfg.BlobEnabled {
		mirror, err := blobstore.New(context.Background(), blobstore.Options{
			Enabled:         true,
			Bucket:          cfg.BlobBucket,
			Region:          cfg.BlobRegion,
			Endpoint:        cfg.BlobEndpoint,
			AccessKeyID:     cfg.BlobAccessKey,
			AccessKeySecret: cfg.BlobSecretKey,
		})
		if err != nil {
			panic("demos module blobstore: " + err.Error())
		}
		d.Mirror = mirror
		d.MirrorKey = blobstore.Key
	}

	svc := demosvc.New(d)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = ExposedPorts{Pipeline: svc, Queue: jobs}

	external := b.Register
	m.register = func(r httpkit.Router) {
		demohttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Service exposes the pipeline for sibling binaries
func (m *Module) Service() *demosvc.Svc { return m.svc }
