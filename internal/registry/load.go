package registry

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/vk/restifygo/internal/config"
	"github.com/vk/restifygo/internal/ctxlog"
	"github.com/vk/restifygo/internal/repository"
)

// LoadFromDirectory scans a directory for repository manifests, builds a
// store-backed repository from each, and registers them sorted
// alphabetically by URI key. A nonexistent directory is a silent no-op.
//
// Every manifest must reference a model type name previously registered
// with RegisterModel; an unknown name is a startup error.
func (r *Registry) LoadFromDirectory(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug("Repository manifest directory does not exist, skipping.", "path", path)
		return nil
	}

	model, err := r.loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load repository manifests from %s: %w", path, err)
	}

	defs := make([]*config.RepositoryDefinition, len(model.Repositories))
	copy(defs, model.Repositories)
	sort.Slice(defs, func(i, j int) bool { return defs[i].Key < defs[j].Key })

	repos := make([]repository.Repository, 0, len(defs))
	for _, def := range defs {
		repo, err := r.buildFromDefinition(def)
		if err != nil {
			return err
		}
		repos = append(repos, repo)
	}

	if err := r.Register(ctx, repos...); err != nil {
		return err
	}
	logger.Info("Repository manifests loaded.", "path", path, "repositories", len(repos))
	return nil
}

// EnsureLoaded triggers LoadFromDirectory against the configured manifest
// path, but only when the registry is still empty. Calling it on a
// populated registry performs no scan and no registration, so it is safe
// to invoke on every resolution as a lazy-init guard.
func (r *Registry) EnsureLoaded(ctx context.Context) error {
	if len(r.repos) > 0 {
		return nil
	}
	return r.LoadFromDirectory(ctx, r.manifestPath)
}

// buildFromDefinition turns a manifest definition into a store-backed
// repository, performing the manifest-to-code parity check on the model
// type name.
func (r *Registry) buildFromDefinition(def *config.RepositoryDefinition) (repository.Repository, error) {
	factory, ok := r.models[def.ModelType]
	if !ok {
		return nil, fmt.Errorf("repository '%s': manifest references model '%s', but no factory with that name is registered", def.Key, def.ModelType)
	}

	fields := make([]repository.Field, 0, len(def.Fields))
	for _, f := range def.Fields {
		fields = append(fields, repository.Field{Name: f.Name, Type: f.Type, Optional: f.Optional})
	}

	desc := repository.Descriptor{
		Key:                def.Key,
		Label:              def.Label,
		Prefix:             def.Prefix,
		ModelType:          def.ModelType,
		Table:              def.Table,
		GloballySearchable: def.GloballySearchable,
		Fields:             fields,
	}
	return repository.NewStoreBacked(desc, factory, r.store), nil
}
