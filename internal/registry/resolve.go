package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/restifygo/internal/repository"
)

// ErrRepositoryNotFound is returned by Resolve when no repository claims
// the requested URI key. The routing layer renders it as a 404.
var ErrRepositoryNotFound = errors.New("repository not found")

// ByKey returns the first registered repository whose URI key equals key,
// or nil if none matches.
func (r *Registry) ByKey(key string) repository.Repository {
	for _, repo := range r.repos {
		if repo.Descriptor().Key == key {
			return repo
		}
	}
	return nil
}

// ByPrefix returns the first registered repository whose custom route
// prefix is contained in the candidate prefix (left-trimmed of a leading
// slash). The match is a substring check, not an exact comparison, so
// registration order decides ties between overlapping prefixes.
func (r *Registry) ByPrefix(prefix string) repository.Repository {
	candidate := strings.TrimPrefix(prefix, "/")
	for _, repo := range r.repos {
		p := repo.Descriptor().Prefix
		if p != "" && strings.Contains(candidate, strings.TrimPrefix(p, "/")) {
			return repo
		}
	}
	return nil
}

// ByModel returns the first registered repository backed by the given
// model. The argument is either a live model instance (its runtime type
// name is extracted) or a type name string.
func (r *Registry) ByModel(model any) repository.Repository {
	var name string
	switch m := model.(type) {
	case string:
		name = m
	case repository.Model:
		name = repository.TypeName(m)
	default:
		return nil
	}
	for _, repo := range r.repos {
		if repo.Descriptor().ModelType == name {
			return repo
		}
	}
	return nil
}

// ByTable returns the first registered repository whose backing model
// persists to the given storage table. Each repository's model is
// instantiated to ask for its table name; a descriptor-level table
// override takes precedence.
func (r *Registry) ByTable(tableName string) repository.Repository {
	for _, repo := range r.repos {
		table := repo.Descriptor().Table
		if table == "" {
			table = repo.NewModel().TableName()
		}
		if table == tableName {
			return repo
		}
	}
	return nil
}

// Resolve composes ByKey with instantiation: it returns the repository
// registered under key, ready to serve requests against a freshly
// constructed model. A mock installed via SetMock takes precedence over
// the registered set. When no repository claims the key, the returned
// error wraps ErrRepositoryNotFound.
func (r *Registry) Resolve(key string) (repository.Repository, error) {
	if mock, ok := r.mocks[key]; ok {
		return mock, nil
	}
	repo := r.ByKey(key)
	if repo == nil {
		return nil, fmt.Errorf("%w: %q", ErrRepositoryNotFound, key)
	}
	return repo, nil
}
