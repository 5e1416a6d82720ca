package registry

import (
	"context"
	"fmt"

	"github.com/vk/restifygo/internal/config"
	"github.com/vk/restifygo/internal/ctxlog"
	"github.com/vk/restifygo/internal/repository"
	"github.com/vk/restifygo/internal/store"
)

// Module is the interface application modules implement to contribute
// repositories and model factories during startup.
type Module interface {
	Register(ctx context.Context, r *Registry) error
}

// Registry holds all registered repositories and model factories for a
// single application instance. Registration order is preserved: prefix
// resolution is a first-match scan, so the order repositories were added
// in decides ties between overlapping prefixes.
type Registry struct {
	loader       config.Loader
	store        store.Store
	manifestPath string

	repos  []repository.Repository
	seen   map[repository.Repository]struct{}
	models map[string]func() repository.Model
	mocks  map[string]repository.Repository
}

// New creates an empty Registry. The loader and store back manifest-built
// repositories; manifestPath is the directory EnsureLoaded falls back to.
func New(loader config.Loader, st store.Store, manifestPath string) *Registry {
	return &Registry{
		loader:       loader,
		store:        st,
		manifestPath: manifestPath,
		seen:         make(map[repository.Repository]struct{}),
		models:       make(map[string]func() repository.Model),
		mocks:        make(map[string]repository.Repository),
	}
}

// RegisterModel registers a model factory under a type name, making the
// name referencable from repository manifests. Re-registering a name is a
// programmer error.
func (r *Registry) RegisterModel(name string, factory func() repository.Model) {
	if _, exists := r.models[name]; exists {
		panic(fmt.Sprintf("model factory with name '%s' already registered", name))
	}
	r.models[name] = factory
}

// ModelFactory returns the factory registered under name, if any.
func (r *Registry) ModelFactory(name string) (func() repository.Model, bool) {
	factory, ok := r.models[name]
	return factory, ok
}

// Register merges the given repositories into the registry. Repositories
// already registered (by identity) are skipped; each newly added
// repository's boot hook runs exactly once, synchronously, before the
// repository becomes resolvable.
//
// Duplicate URI keys are not rejected: lookups are first-match scans, so
// the earliest registration under a key wins.
func (r *Registry) Register(ctx context.Context, repos ...repository.Repository) error {
	logger := ctxlog.FromContext(ctx)
	for _, repo := range repos {
		if _, exists := r.seen[repo]; exists {
			continue
		}
		if booter, ok := repo.(repository.Booter); ok {
			if err := booter.Boot(ctx); err != nil {
				return fmt.Errorf("boot hook failed for repository '%s': %w", repo.Descriptor().Key, err)
			}
		}
		r.seen[repo] = struct{}{}
		r.repos = append(r.repos, repo)
		logger.Debug("Registered repository.", "key", repo.Descriptor().Key)
	}
	return nil
}

// SetMock installs a precomputed repository under a URI key. Resolve
// returns the mock instead of scanning the registry; intended for tests
// and development fixtures.
func (r *Registry) SetMock(key string, repo repository.Repository) {
	r.mocks[key] = repo
}

// All returns the registered repositories in registration order. The
// returned slice is shared; callers must not mutate it.
func (r *Registry) All() []repository.Repository {
	return r.repos
}
