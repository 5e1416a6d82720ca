package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_RepositoryManifest(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "posts.hcl", `
repository "posts" {
  label               = "Posts"
  model               = "Post"
  table               = "blog_posts"
  prefix              = "blog/posts"
  globally_searchable = true

  field "title" {
    type = "string"
  }
  field "views" {
    type     = "number"
    optional = true
  }
}
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Repositories, 1)

	def := model.Repositories[0]
	assert.Equal(t, "posts", def.Key)
	assert.Equal(t, "Posts", def.Label)
	assert.Equal(t, "Post", def.ModelType)
	assert.Equal(t, "blog_posts", def.Table)
	assert.Equal(t, "blog/posts", def.Prefix)
	assert.True(t, def.GloballySearchable)

	require.Len(t, def.Fields, 2)
	assert.Equal(t, cty.String, def.Fields[0].Type)
	assert.False(t, def.Fields[0].Optional)
	assert.Equal(t, cty.Number, def.Fields[1].Type)
	assert.True(t, def.Fields[1].Optional)
}

func TestLoad_LabelDefaultsToKey(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "users.hcl", `
repository "users" {
  model = "User"
}
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Repositories, 1)
	assert.Equal(t, "users", model.Repositories[0].Label)
}

func TestLoad_APIBlockLayering(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	// Files load in sorted path order; later files override earlier ones
	// attribute by attribute.
	writeFile(t, dir, "01_base.hcl", `
api {
  base_path             = "/api"
  action_log_repository = "action-logs"
}
`)
	writeFile(t, dir, "02_override.hcl", `
api {
  base_path = "/v2"
}
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "/v2", model.API.BasePath)
	assert.Equal(t, "action-logs", model.API.ActionLogRepository)
}

func TestLoad_UnsupportedFieldType(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "bad.hcl", `
repository "posts" {
  model = "Post"

  field "title" {
    type = "varchar"
  }
}
`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "varchar")
}

func TestLoad_ParseErrorPropagates(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "broken.hcl", `repository "posts" {`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
}

func TestLoad_MissingPathSkipped(t *testing.T) {
	t.Parallel()

	model, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, model.Repositories)
}

func TestLoad_SingleFilePath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "config.hcl", `
api {
  base_path = "/api"
}
`)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "/api", model.API.BasePath)
}
