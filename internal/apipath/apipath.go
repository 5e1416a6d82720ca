// Package apipath builds the API's base URL and recognizes whether an
// inbound request targets the API's namespace.
package apipath

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/vk/restifygo/internal/repository"
)

// DefaultBasePath is the hardcoded fallback base path used when no
// override is configured.
const DefaultBasePath = "/restify-api"

// Lister is the slice of the registry the path builder needs: the full
// registered set, for custom-prefix recognition.
type Lister interface {
	All() []repository.Repository
}

// Builder constructs API paths from the configured base.
type Builder struct {
	base string
}

// NewBuilder creates a Builder. An empty base means the hardcoded
// fallback applies.
func NewBuilder(base string) *Builder {
	return &Builder{base: base}
}

// Base returns the effective base path, normalized to a single leading
// slash and no trailing slash.
func (b *Builder) Base() string {
	base := b.base
	if base == "" {
		base = DefaultBasePath
	}
	base = "/" + strings.Trim(base, "/")
	return base
}

// Path returns the base path, optionally appended with /suffix and a
// URL-encoded query string.
func (b *Builder) Path(suffix string, query url.Values) string {
	path := b.Base()
	if suffix != "" {
		path += "/" + strings.TrimPrefix(suffix, "/")
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return path
}

// IsAPIRequest reports whether the request's path falls under the API
// namespace: the configured base, its trimmed variant, the hardcoded
// fallback, or any registered repository's custom prefix. The checks
// short-circuit on the first hit.
func (b *Builder) IsAPIRequest(r *http.Request, reg Lister) bool {
	path := r.URL.Path

	if strings.HasPrefix(path, b.Base()) {
		return true
	}
	if trimmed := strings.TrimSuffix(b.base, "/"); trimmed != "" && strings.HasPrefix(path, "/"+strings.TrimPrefix(trimmed, "/")) {
		return true
	}
	if strings.HasPrefix(path, DefaultBasePath) {
		return true
	}
	if reg != nil {
		for _, repo := range reg.All() {
			p := repo.Descriptor().Prefix
			if p != "" && strings.HasPrefix(path, "/"+strings.Trim(p, "/")) {
				return true
			}
		}
	}
	return false
}
