package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/restifygo/internal/hcl"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	return NewApp(io.Discard, &cfg, hcl.NewLoader(), nil)
}

func get(a *App, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewApp_ServesCoreRepositories(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, Config{})

	rec := get(a, "/restify-api/posts")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(a, "/restify-api/comments")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewApp_BasePathOverride(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "api.hcl", `
api {
  base_path = "/api"
}
`)

	a := newTestApp(t, Config{ConfigPath: cfgPath})

	assert.Equal(t, "/api", a.Paths().Base())
	rec := get(a, "/api/posts")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewApp_LoadsManifestRepositories(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "articles.hcl", `
repository "articles" {
  label = "Articles"
  model = "Post"
  table = "articles"

  field "title" {
    type = "string"
  }
}
`)

	a := newTestApp(t, Config{RepositoriesPath: dir})

	// Both the compiled-in modules and the manifest repository resolve.
	require.NotNil(t, a.Registry().ByKey("articles"))
	rec := get(a, "/restify-api/articles")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewApp_UnknownManifestModelPanics(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "bad.hcl", `
repository "ghosts" {
  model = "Ghost"
}
`)

	assert.Panics(t, func() {
		newTestApp(t, Config{RepositoriesPath: dir})
	})
}

func TestNewApp_SqliteBackend(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "app.db")
	a := newTestApp(t, Config{DatabasePath: dbPath})

	body := `{"title":"durable"}`
	req := httptest.NewRequest(http.MethodPost, "/restify-api/posts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = get(a, "/restify-api/posts")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "durable", envelope.Data[0]["title"])

	require.NoError(t, a.closeStore())
	assert.FileExists(t, dbPath)
}
