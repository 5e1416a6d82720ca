package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/restifygo/internal/apipath"
	"github.com/vk/restifygo/internal/authz"
	"github.com/vk/restifygo/internal/config"
	"github.com/vk/restifygo/internal/ctxlog"
	"github.com/vk/restifygo/internal/lifecycle"
	"github.com/vk/restifygo/internal/registry"
	"github.com/vk/restifygo/internal/router"
	"github.com/vk/restifygo/internal/store"
	"github.com/vk/restifygo/internal/store/memstore"
	"github.com/vk/restifygo/internal/store/sqlitestore"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	registry   *registry.Registry
	hooks      *lifecycle.Hooks
	router     *router.Router
	paths      *apipath.Builder
	config     *config.Model
	httpServer *http.Server
	closeStore func() error
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and
// registry. Startup failures are programmer or deployment errors and
// panic, matching the caller's recover-and-exit handling.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, auth authz.Authorizer, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the API settings into the format-agnostic model first. The
	// repository manifests are loaded later, through the registry, so the
	// lazy-init path stays exercised.
	var cfgPaths []string
	if appConfig.ConfigPath != "" {
		cfgPaths = append(cfgPaths, appConfig.ConfigPath)
	}
	cfgModel, err := loader.Load(ctx, cfgPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.")

	st, closeStore := newStore(ctx, appConfig.DatabasePath)

	reg := registry.New(loader, st, appConfig.RepositoriesPath)
	if len(modules) == 0 {
		modules = coreModules(st)
	}
	for _, mod := range modules {
		if err := mod.Register(ctx, reg); err != nil {
			panic(fmt.Errorf("module registration failed: %w", err))
		}
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.LoadFromDirectory(ctx, appConfig.RepositoriesPath); err != nil {
		panic(err)
	}
	logger.Debug("Repository manifests loaded.", "repositories", len(reg.All()))

	if auth == nil {
		auth = authz.AllowAll{}
	}
	hooks := lifecycle.New()
	paths := apipath.NewBuilder(cfgModel.API.BasePath)
	rt := router.New(reg, auth, hooks, paths, cfgModel.API.ActionLogRepository)

	return &App{
		outW:       outW,
		logger:     logger,
		registry:   reg,
		hooks:      hooks,
		router:     rt,
		paths:      paths,
		config:     cfgModel,
		closeStore: closeStore,
	}
}

// newStore selects the persistence backend: SQLite when a database path
// is configured, in-memory otherwise.
func newStore(ctx context.Context, databasePath string) (store.Store, func() error) {
	if databasePath == "" {
		return memstore.New(), func() error { return nil }
	}
	st, err := sqlitestore.Open(ctx, databasePath)
	if err != nil {
		panic(err)
	}
	return st, st.Close
}

// Registry returns the application's registry. This is primarily for
// testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Hooks returns the lifecycle hooks so hosting code can attach listeners
// before Run.
func (a *App) Hooks() *lifecycle.Hooks {
	return a.hooks
}

// Handler returns the API's http.Handler, for embedding the API into an
// existing server or an httptest harness.
func (a *App) Handler() http.Handler {
	return a.router
}

// Paths returns the application's path builder.
func (a *App) Paths() *apipath.Builder {
	return a.paths
}
