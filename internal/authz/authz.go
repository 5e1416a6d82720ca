// Package authz defines the delegated authorization check the registry
// and routing layer consult before exposing a repository to a request.
// The check itself belongs to the host application; this package only
// fixes the contract and provides permissive and static defaults.
package authz

import (
	"net/http"

	"github.com/vk/restifygo/internal/repository"
)

// Authorizer decides whether the actor behind an inbound request may use
// a repository. Denial is not an error: callers simply exclude the
// repository from their result.
type Authorizer interface {
	Allows(r *http.Request, repo repository.Repository) bool
}

// AllowAll is the default Authorizer: every repository is available to
// every request.
type AllowAll struct{}

// Allows always reports true.
func (AllowAll) Allows(*http.Request, repository.Repository) bool {
	return true
}

// Func adapts a plain function to the Authorizer interface.
type Func func(r *http.Request, repo repository.Repository) bool

// Allows invokes the wrapped function.
func (f Func) Allows(r *http.Request, repo repository.Repository) bool {
	return f(r, repo)
}
