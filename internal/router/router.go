package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/vk/restifygo/internal/apipath"
	"github.com/vk/restifygo/internal/authz"
	"github.com/vk/restifygo/internal/ctxlog"
	"github.com/vk/restifygo/internal/lifecycle"
	"github.com/vk/restifygo/internal/registry"
	"github.com/vk/restifygo/internal/repository"
	"github.com/vk/restifygo/internal/store"
)

// Router dispatches API requests to registered repositories.
type Router struct {
	registry     *registry.Registry
	auth         authz.Authorizer
	hooks        *lifecycle.Hooks
	paths        *apipath.Builder
	actionLogKey string
}

// New creates a Router over a populated registry. actionLogKey is the URI
// key of the repository that records dispatched actions; empty disables
// action logging.
func New(reg *registry.Registry, auth authz.Authorizer, hooks *lifecycle.Hooks, paths *apipath.Builder, actionLogKey string) *Router {
	if auth == nil {
		auth = authz.AllowAll{}
	}
	if hooks == nil {
		hooks = lifecycle.New()
	}
	return &Router{
		registry:     reg,
		auth:         auth,
		hooks:        hooks,
		paths:        paths,
		actionLogKey: actionLogKey,
	}
}

// ServeHTTP implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.FromContext(ctx)

	if err := rt.registry.EnsureLoaded(ctx); err != nil {
		logger.Error("Failed to lazily load repository manifests.", "error", err)
		writeErrors(w, http.StatusInternalServerError, "failed to load repositories")
		return
	}

	if !rt.paths.IsAPIRequest(r, rt.registry) {
		writeErrors(w, http.StatusNotFound, "not an API path")
		return
	}

	repo, rest, ok := rt.match(r)
	if !ok {
		// Inside the namespace but under no repository: the only
		// non-repository route is global search.
		if rest == "search" && r.Method == http.MethodGet {
			rt.globalSearch(w, r)
			return
		}
		writeErrors(w, http.StatusNotFound, "repository not found")
		return
	}

	if !rt.auth.Allows(r, repo) {
		writeErrors(w, http.StatusForbidden, "unauthorized to use this repository")
		return
	}

	rt.dispatch(w, r, repo, rest)
}

// match resolves the request path to a repository and the path remainder
// after the repository's segment. When no repository matches, the
// remainder carries the first in-namespace segment so the caller can
// recognize namespace-level routes like /search.
func (rt *Router) match(r *http.Request) (repository.Repository, string, bool) {
	base := rt.paths.Base()
	path := r.URL.Path

	if cut, found := strings.CutPrefix(path, base+"/"); found || path == base {
		if path == base {
			return nil, "", false
		}
		segments := strings.SplitN(strings.Trim(cut, "/"), "/", 2)
		key := segments[0]
		repo, err := rt.registry.Resolve(key)
		if err != nil {
			return nil, key, false
		}
		if len(segments) == 2 {
			return repo, segments[1], true
		}
		return repo, "", true
	}

	// Custom-prefix routes live outside the base path. ByPrefix is an
	// order-dependent contains scan, mirroring key resolution.
	repo := rt.registry.ByPrefix(path)
	if repo == nil {
		return nil, "", false
	}
	prefix := "/" + strings.Trim(repo.Descriptor().Prefix, "/")
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	return repo, rest, true
}

// dispatch routes the path remainder after the repository segment to the
// matching CRUD or action behavior.
func (rt *Router) dispatch(w http.ResponseWriter, r *http.Request, repo repository.Repository, rest string) {
	segments := []string{}
	if rest != "" {
		segments = strings.Split(rest, "/")
	}

	switch {
	case len(segments) == 0:
		rt.collection(w, r, repo)
	case len(segments) == 1:
		rt.item(w, r, repo, segments[0])
	case len(segments) == 2 && segments[0] == "actions":
		rt.action(w, r, repo, "", segments[1])
	case len(segments) == 3 && segments[1] == "actions":
		rt.action(w, r, repo, segments[0], segments[2])
	default:
		writeErrors(w, http.StatusNotFound, "no such route")
	}
}

func (rt *Router) collection(w http.ResponseWriter, r *http.Request, repo repository.Repository) {
	rt.hooks.EmitBeforeEach(r.Context(), r)
	switch r.Method {
	case http.MethodGet:
		attrs, err := repo.List(r.Context(), r.URL.Query())
		if err != nil {
			rt.fail(w, r, err)
			return
		}
		writeData(w, http.StatusOK, attrs)
	case http.MethodPost:
		attrs, ok := rt.decodeBody(w, r)
		if !ok {
			return
		}
		created, err := repo.Store(r.Context(), attrs)
		if err != nil {
			rt.fail(w, r, err)
			return
		}
		writeData(w, http.StatusCreated, created)
	default:
		writeErrors(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (rt *Router) item(w http.ResponseWriter, r *http.Request, repo repository.Repository, id string) {
	rt.hooks.EmitBeforeEach(r.Context(), r)
	switch r.Method {
	case http.MethodGet:
		attrs, err := repo.Show(r.Context(), id)
		if err != nil {
			rt.fail(w, r, err)
			return
		}
		writeData(w, http.StatusOK, attrs)
	case http.MethodPut, http.MethodPatch:
		attrs, ok := rt.decodeBody(w, r)
		if !ok {
			return
		}
		updated, err := repo.Update(r.Context(), id, attrs)
		if err != nil {
			rt.fail(w, r, err)
			return
		}
		writeData(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := repo.Destroy(r.Context(), id); err != nil {
			rt.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeErrors(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (rt *Router) action(w http.ResponseWriter, r *http.Request, repo repository.Repository, id, name string) {
	if r.Method != http.MethodPost {
		writeErrors(w, http.StatusMethodNotAllowed, "actions require POST")
		return
	}
	fn, ok := repo.Actions()[name]
	if !ok {
		writeErrors(w, http.StatusNotFound, "no such action")
		return
	}

	rt.hooks.EmitBeforeEach(r.Context(), r)
	payload, ok := rt.decodeBody(w, r)
	if !ok {
		return
	}
	result, err := fn(r.Context(), id, payload)
	if err != nil {
		rt.fail(w, r, err)
		return
	}
	rt.logAction(r, repo, id, name)
	writeData(w, http.StatusOK, result)
}

func (rt *Router) globalSearch(w http.ResponseWriter, r *http.Request) {
	rt.hooks.EmitBeforeEach(r.Context(), r)
	term := r.URL.Query().Get("search")

	results := make(map[string][]repository.Attributes)
	for _, repo := range rt.registry.GloballySearchable(r, rt.auth) {
		matches, err := repo.Search(r.Context(), term)
		if err != nil {
			rt.fail(w, r, err)
			return
		}
		results[repo.Descriptor().Key] = matches
	}
	writeData(w, http.StatusOK, results)
}

// logAction records a dispatched action in the configured action-log
// repository. Logging failures must not fail the action itself; they are
// logged and dropped.
func (rt *Router) logAction(r *http.Request, repo repository.Repository, id, name string) {
	if rt.actionLogKey == "" {
		return
	}
	logRepo, err := rt.registry.Resolve(rt.actionLogKey)
	if err != nil {
		ctxlog.FromContext(r.Context()).Warn("Action-log repository not registered.", "key", rt.actionLogKey)
		return
	}
	_, err = logRepo.Store(r.Context(), repository.Attributes{
		"repository": repo.Descriptor().Key,
		"record_id":  id,
		"action":     name,
		"path":       r.URL.Path,
	})
	if err != nil {
		ctxlog.FromContext(r.Context()).Warn("Failed to write action log entry.", "error", err)
	}
}

// decodeBody reads the request body as a JSON attribute map. An empty
// body decodes to an empty map.
func (rt *Router) decodeBody(w http.ResponseWriter, r *http.Request) (repository.Attributes, bool) {
	attrs := repository.Attributes{}
	if r.Body == nil {
		return attrs, true
	}
	err := json.NewDecoder(r.Body).Decode(&attrs)
	if err != nil && !errors.Is(err, io.EOF) {
		writeErrors(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	return attrs, true
}

// fail translates a repository error into the HTTP response and notifies
// exception listeners for server-side failures.
func (rt *Router) fail(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *repository.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, registry.ErrRepositoryNotFound):
		writeErrors(w, http.StatusNotFound, err.Error())
	case errors.As(err, &vErr):
		writeErrors(w, http.StatusUnprocessableEntity, vErr.Problems...)
	default:
		rt.hooks.EmitException(r.Context(), r, err)
		ctxlog.FromContext(r.Context()).Error("Repository operation failed.", "error", err)
		writeErrors(w, http.StatusInternalServerError, "internal error")
	}
}
