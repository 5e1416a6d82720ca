package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/restifygo/internal/store"
)

// ValidationError reports one or more attribute-level problems with an
// inbound write payload. The routing layer renders it as a 422 response.
type ValidationError struct {
	Problems []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// StoreBacked is the generic repository implementation: a descriptor plus
// a model factory, with all CRUD operations delegated to a store.Store.
// Repositories defined by declarative manifests are StoreBacked; Go-defined
// repositories typically embed it and override what they need.
type StoreBacked struct {
	desc     Descriptor
	newModel func() Model
	store    store.Store
}

// NewStoreBacked builds a repository from a descriptor, a model factory,
// and a backing store.
func NewStoreBacked(desc Descriptor, newModel func() Model, st store.Store) *StoreBacked {
	if desc.Label == "" {
		desc.Label = desc.Key
	}
	return &StoreBacked{desc: desc, newModel: newModel, store: st}
}

// Descriptor returns the repository's static identity.
func (r *StoreBacked) Descriptor() Descriptor {
	return r.desc
}

// NewModel returns a freshly constructed model instance.
func (r *StoreBacked) NewModel() Model {
	return r.newModel()
}

// Table resolves the storage table: the descriptor override if present,
// otherwise the model's own TableName.
func (r *StoreBacked) Table() string {
	if r.desc.Table != "" {
		return r.desc.Table
	}
	return r.newModel().TableName()
}

// List returns every record of the backing table. The query is accepted
// for signature compatibility; filtering is left to specialized
// repositories.
func (r *StoreBacked) List(ctx context.Context, query url.Values) ([]Attributes, error) {
	recs, err := r.store.List(ctx, r.Table())
	if err != nil {
		return nil, err
	}
	return toAttributes(recs), nil
}

// Show retrieves a single record by id.
func (r *StoreBacked) Show(ctx context.Context, id string) (Attributes, error) {
	rec, err := r.store.Get(ctx, r.Table(), id)
	if err != nil {
		return nil, err
	}
	return Attributes(rec), nil
}

// Store validates attrs against the declared fields and persists a new
// record. A missing "id" attribute is minted as a fresh UUID.
func (r *StoreBacked) Store(ctx context.Context, attrs Attributes) (Attributes, error) {
	if err := r.validate(attrs, true); err != nil {
		return nil, err
	}
	id, _ := attrs["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	rec := store.Record(attrs)
	rec["id"] = id
	if err := r.store.Put(ctx, r.Table(), id, rec); err != nil {
		return nil, err
	}
	return Attributes(rec), nil
}

// Update validates the provided attrs, merges them over the existing
// record, and persists the result.
func (r *StoreBacked) Update(ctx context.Context, id string, attrs Attributes) (Attributes, error) {
	if err := r.validate(attrs, false); err != nil {
		return nil, err
	}
	rec, err := r.store.Get(ctx, r.Table(), id)
	if err != nil {
		return nil, err
	}
	for k, v := range attrs {
		if k == "id" {
			continue
		}
		rec[k] = v
	}
	if err := r.store.Put(ctx, r.Table(), id, rec); err != nil {
		return nil, err
	}
	return Attributes(rec), nil
}

// Destroy removes a record by id. The record must exist.
func (r *StoreBacked) Destroy(ctx context.Context, id string) error {
	if _, err := r.store.Get(ctx, r.Table(), id); err != nil {
		return err
	}
	return r.store.Delete(ctx, r.Table(), id)
}

// Search matches term case-insensitively against every string attribute
// of every record.
func (r *StoreBacked) Search(ctx context.Context, term string) ([]Attributes, error) {
	recs, err := r.store.List(ctx, r.Table())
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	var matched []store.Record
	for _, rec := range recs {
		for _, v := range rec {
			s, ok := v.(string)
			if ok && strings.Contains(strings.ToLower(s), needle) {
				matched = append(matched, rec)
				break
			}
		}
	}
	return toAttributes(matched), nil
}

// Actions returns nil; manifest-built repositories expose no custom
// actions.
func (r *StoreBacked) Actions() map[string]Action {
	return nil
}

// validate checks attrs against the declared field surface. When
// requireAll is set, non-optional fields must be present (the store path);
// otherwise only provided attributes are checked (the update path). A
// repository with no declared fields accepts any payload.
func (r *StoreBacked) validate(attrs Attributes, requireAll bool) error {
	if len(r.desc.Fields) == 0 {
		return nil
	}

	declared := make(map[string]Field, len(r.desc.Fields))
	for _, f := range r.desc.Fields {
		declared[f.Name] = f
	}

	var problems []string
	if requireAll {
		for _, f := range r.desc.Fields {
			if f.Optional {
				continue
			}
			if _, ok := attrs[f.Name]; !ok {
				problems = append(problems, fmt.Sprintf("field %q is required", f.Name))
			}
		}
	}
	for name, val := range attrs {
		if name == "id" {
			continue
		}
		f, ok := declared[name]
		if !ok {
			problems = append(problems, fmt.Sprintf("field %q is not declared", name))
			continue
		}
		if f.Type.Equals(cty.DynamicPseudoType) || val == nil {
			continue
		}
		if _, err := gocty.ToCtyValue(val, f.Type); err != nil {
			problems = append(problems, fmt.Sprintf("field %q: expected %s", name, f.Type.FriendlyName()))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func toAttributes(recs []store.Record) []Attributes {
	attrs := make([]Attributes, 0, len(recs))
	for _, rec := range recs {
		attrs = append(attrs, Attributes(rec))
	}
	return attrs
}
