// Package schema holds the HCL-tagged structs that repository manifests
// and API configuration files decode into. Translation to the
// format-agnostic config model happens in the hcl package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// APIBlock represents the top-level `api` block of a configuration file.
type APIBlock struct {
	BasePath            string `hcl:"base_path,optional"`
	ActionLogRepository string `hcl:"action_log_repository,optional"`
}

// FieldBlock declares a single writable attribute inside a repository
// manifest.
type FieldBlock struct {
	Name     string `hcl:"name,label"`
	Type     string `hcl:"type"`
	Optional bool   `hcl:"optional,optional"`
}

// RepositoryBlock represents one `repository` manifest block. The label is
// the resource's URI key.
type RepositoryBlock struct {
	Key                string        `hcl:"uri_key,label"`
	Label              string        `hcl:"label,optional"`
	Prefix             string        `hcl:"prefix,optional"`
	Model              string        `hcl:"model"`
	Table              string        `hcl:"table,optional"`
	GloballySearchable bool          `hcl:"globally_searchable,optional"`
	Fields             []*FieldBlock `hcl:"field,block"`
}

// File represents the top-level structure of a configuration or manifest
// file: any number of repository blocks plus an optional api block.
type File struct {
	API          *APIBlock          `hcl:"api,block"`
	Repositories []*RepositoryBlock `hcl:"repository,block"`
	Body         hcl.Body           `hcl:",remain"`
}
