package registry

import (
	"net/http"
	"sort"

	"github.com/vk/restifygo/internal/authz"
	"github.com/vk/restifygo/internal/repository"
)

// GloballySearchable narrows the registry to repositories the request's
// actor is authorized to use and that opt into global search, ordered
// ascending by human-readable label. An authorization denial simply
// excludes the repository; it is never an error.
func (r *Registry) GloballySearchable(req *http.Request, auth authz.Authorizer) []repository.Repository {
	var result []repository.Repository
	for _, repo := range r.repos {
		if !repo.Descriptor().GloballySearchable {
			continue
		}
		if !auth.Allows(req, repo) {
			continue
		}
		result = append(result, repo)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Descriptor().Label < result[j].Descriptor().Label
	})
	return result
}
