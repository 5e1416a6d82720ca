package apipath

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/restifygo/internal/repository"
)

// prefixLister is a minimal Lister carrying just descriptor prefixes.
type prefixLister []string

type prefixRepo struct {
	repository.Repository
	prefix string
}

func (p prefixRepo) Descriptor() repository.Descriptor {
	return repository.Descriptor{Key: "x", Prefix: p.prefix}
}

func (l prefixLister) All() []repository.Repository {
	repos := make([]repository.Repository, 0, len(l))
	for _, p := range l {
		repos = append(repos, prefixRepo{prefix: p})
	}
	return repos
}

func TestPath_FallbackBase(t *testing.T) {
	t.Parallel()
	b := NewBuilder("")

	assert.Equal(t, "/restify-api", b.Path("", nil))
}

func TestPath_SuffixAndQuery(t *testing.T) {
	t.Parallel()
	b := NewBuilder("")

	got := b.Path("posts", url.Values{"page": []string{"2"}})
	assert.Equal(t, "/restify-api/posts?page=2", got)
}

func TestPath_ConfiguredBase(t *testing.T) {
	t.Parallel()
	b := NewBuilder("/api/")

	assert.Equal(t, "/api", b.Base())
	assert.Equal(t, "/api/posts", b.Path("/posts", nil))
}

func TestIsAPIRequest(t *testing.T) {
	t.Parallel()
	b := NewBuilder("/api")
	reg := prefixLister{"custom/posts"}

	cases := []struct {
		name string
		path string
		want bool
	}{
		{"configured base", "/api/posts", true},
		{"hardcoded fallback", "/restify-api/posts", true},
		{"custom repository prefix", "/custom/posts/1", true},
		{"outside namespace", "/admin/posts", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			assert.Equal(t, tc.want, b.IsAPIRequest(req, reg))
		})
	}
}

func TestIsAPIRequest_NilRegistry(t *testing.T) {
	t.Parallel()
	b := NewBuilder("")
	req := httptest.NewRequest(http.MethodGet, "/restify-api/posts", nil)

	assert.True(t, b.IsAPIRequest(req, nil))
}
