package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of the application
// configuration: the API settings plus every repository manifest found.
type Model struct {
	API          *APIConfig
	Repositories []*RepositoryDefinition
}

// APIConfig carries the read-only settings the routing layer consumes.
type APIConfig struct {
	// BasePath overrides the API base path. Empty means the hardcoded
	// fallback applies.
	BasePath string

	// ActionLogRepository is the URI key of the repository that receives
	// an entry for every dispatched action. Empty disables action
	// logging.
	ActionLogRepository string
}

// RepositoryDefinition is the format-agnostic representation of one
// repository manifest block.
type RepositoryDefinition struct {
	Key                string
	Label              string
	Prefix             string
	ModelType          string
	Table              string
	GloballySearchable bool
	Fields             []*FieldDefinition
}

// FieldDefinition declares a single writable attribute of a repository.
type FieldDefinition struct {
	Name     string
	Type     cty.Type
	Optional bool
}
