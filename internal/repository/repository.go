package repository

import (
	"context"
	"net/url"
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

// Model is implemented by every data model a repository can expose.
// TableName reports the storage table the model persists to.
type Model interface {
	TableName() string
}

// TypeName extracts the bare Go type name from a live model instance,
// stripping any pointer indirection. A *posts.Post yields "Post".
func TypeName(m Model) string {
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Attributes is the raw attribute set of an inbound create/update request
// after JSON decoding, keyed by field name.
type Attributes map[string]any

// Action is a named, non-CRUD operation a repository exposes under
// POST /{key}/{id}/actions/{name} (or without an id for collection-level
// actions, in which case id is empty).
type Action func(ctx context.Context, id string, payload Attributes) (any, error)

// Field declares one attribute of a repository's write surface. Incoming
// store/update payloads are checked against the declared fields.
type Field struct {
	Name     string
	Type     cty.Type
	Optional bool
}

// Descriptor is the static identity of a repository: the pieces the
// registry scans when resolving an incoming request.
type Descriptor struct {
	// Key is the unique URI segment identifying the resource collection,
	// e.g. "posts" in GET /restify-api/posts.
	Key string

	// Label is the human-readable name used to order repositories in
	// listing surfaces such as global search.
	Label string

	// Prefix is an optional custom route prefix. Repositories with a
	// prefix are recognized outside the configured API base path.
	Prefix string

	// ModelType is the registered model type name backing this
	// repository, e.g. "Post".
	ModelType string

	// Table overrides the storage table. Empty means the model's own
	// TableName is authoritative.
	Table string

	// GloballySearchable opts the repository into the cross-resource
	// search endpoint.
	GloballySearchable bool

	// Fields is the declared write surface, in manifest order.
	Fields []Field
}

// Repository is the contract every resource exposes. All read/write
// operations take a context and return explicit errors; the routing layer
// translates those into HTTP responses.
type Repository interface {
	Descriptor() Descriptor

	// NewModel returns a freshly constructed, zero-valued model instance
	// of the repository's backing type.
	NewModel() Model

	List(ctx context.Context, query url.Values) ([]Attributes, error)
	Show(ctx context.Context, id string) (Attributes, error)
	Store(ctx context.Context, attrs Attributes) (Attributes, error)
	Update(ctx context.Context, id string, attrs Attributes) (Attributes, error)
	Destroy(ctx context.Context, id string) error

	// Search matches records against a free-text term; used by the
	// global search endpoint for searchable repositories.
	Search(ctx context.Context, term string) ([]Attributes, error)

	// Actions returns the repository's named actions keyed by URI
	// segment. A nil map means no actions.
	Actions() map[string]Action
}

// Booter is an optional interface a repository can implement to run
// one-time initialization. The registry invokes Boot synchronously,
// exactly once, when the repository is first registered and before it
// becomes resolvable.
type Booter interface {
	Boot(ctx context.Context) error
}
