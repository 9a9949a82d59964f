package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dmorales-dev/tienda-api/internal/api"
	"github.com/dmorales-dev/tienda-api/internal/api/middleware"
	"github.com/dmorales-dev/tienda-api/internal/config"
	"github.com/dmorales-dev/tienda-api/internal/dispatch"
	"github.com/dmorales-dev/tienda-api/internal/platform/objectstore"
	"github.com/dmorales-dev/tienda-api/internal/platform/postgres"
	"github.com/dmorales-dev/tienda-api/internal/platform/secrets"
	"github.com/dmorales-dev/tienda-api/internal/service/auth"
)

// application wires configuration into the dependency graph. Expensive
// dependencies are built once, on first use: a warm process reuses them
// across requests, and a cold start that only serves /health never pays for
// them at all.
type application struct {
	cfg    *config.Config
	logger *slog.Logger

	verifierOnce sync.Once
	verifier     auth.TokenVerifier
	verifierErr  error

	signerOnce sync.Once
	signer     objectstore.URLSigner
	signerErr  error

	managerOnce sync.Once
	manager     *postgres.Manager
}

func newApplication(cfg *config.Config, logger *slog.Logger) *application {
	return &application{cfg: cfg, logger: logger}
}

// tokenVerifier returns the shared verifier, constructing it on first call.
func (app *application) tokenVerifier() (auth.TokenVerifier, error) {
	app.verifierOnce.Do(func() {
		app.verifier, app.verifierErr = auth.NewVerifier(app.cfg.Auth)
	})
	return app.verifier, app.verifierErr
}

// urlSigner returns the shared upload-URL signer, constructing it on first
// call.
func (app *application) urlSigner() (objectstore.URLSigner, error) {
	app.signerOnce.Do(func() {
		app.signer, app.signerErr = objectstore.NewMinioSigner(app.cfg.Storage)
	})
	return app.signer, app.signerErr
}

// dbManager returns the shared connection manager. The manager itself is
// lazy: no connection happens until a store call needs one.
func (app *application) dbManager() *postgres.Manager {
	app.managerOnce.Do(func() {
		var secretStore secrets.Store
		if app.cfg.Secrets.BaseURL != "" {
			secretStore = secrets.NewClient(app.cfg.Secrets)
		}
		app.manager = postgres.NewManager(app.cfg.Database, secretStore, app.logger)
	})
	return app.manager
}

// router assembles the full HTTP surface: middleware chain, the public
// health route, and one dispatcher mount per resource.
func (app *application) router() (http.Handler, error) {
	verifier, err := app.tokenVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to build token verifier: %w", err)
	}
	signer, err := app.urlSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to build upload URL signer: %w", err)
	}

	db := postgres.NewLazyDB(app.dbManager())
	hasher := auth.NewBcryptHasher()

	dispatchers := []*dispatch.Dispatcher{
		api.NewProductHandler(postgres.NewProductStore(db)).Routes(app.logger),
		api.NewCategoryHandler(postgres.NewCategoryStore(db)).Routes(app.logger),
		api.NewUserHandler(postgres.NewUserStore(db, hasher)).Routes(app.logger),
		api.NewDealHandler(postgres.NewDealStore(db)).Routes(app.logger),
		api.NewImageHandler(signer).Routes(app.logger),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Trace(app.logger))
	if app.cfg.Server.DevMode() {
		r.Use(middleware.CORS)
	}

	r.Method(http.MethodGet, "/health", api.NewHealthHandler(app.cfg.Server.ServiceName))

	authn := middleware.NewAuthMiddleware(verifier)
	r.Group(func(r chi.Router) {
		r.Use(authn.Authenticate)
		for _, d := range dispatchers {
			handler := api.NewResourceHandler(d)
			r.HandleFunc("/"+d.Resource(), handler)
			r.HandleFunc("/"+d.Resource()+"/{id}", handler)
		}
	})

	return r, nil
}
