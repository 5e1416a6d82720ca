package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/restifygo/internal/store"
)

type testModel struct{}

func (testModel) TableName() string { return "things" }

// memStore is a tiny map-backed store for these tests, avoiding an import
// cycle with the memstore package.
type memStore map[string]store.Record

func (m memStore) List(ctx context.Context, table string) ([]store.Record, error) {
	var recs []store.Record
	for _, rec := range m {
		recs = append(recs, rec)
	}
	return recs, nil
}

func (m memStore) Get(ctx context.Context, table, id string) (store.Record, error) {
	rec, ok := m[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return rec, nil
}

func (m memStore) Put(ctx context.Context, table, id string, rec store.Record) error {
	m[id] = rec
	return nil
}

func (m memStore) Delete(ctx context.Context, table, id string) error {
	delete(m, id)
	return nil
}

func newTestRepo(st store.Store) *StoreBacked {
	desc := Descriptor{
		Key:       "things",
		ModelType: "testModel",
		Fields: []Field{
			{Name: "title", Type: cty.String},
			{Name: "views", Type: cty.Number, Optional: true},
			{Name: "extra", Type: cty.DynamicPseudoType, Optional: true},
		},
	}
	return NewStoreBacked(desc, func() Model { return &testModel{} }, st)
}

func TestTypeName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "testModel", TypeName(&testModel{}))
	assert.Equal(t, "testModel", TypeName(testModel{}))
}

func TestStore_MintsUUIDWhenIDAbsent(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(memStore{})

	created, err := repo.Store(context.Background(), Attributes{"title": "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, created["id"])
}

func TestStore_RequiredFieldMissing(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(memStore{})

	_, err := repo.Store(context.Background(), Attributes{"views": float64(1)})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Problems[0], `"title"`)
}

func TestStore_UndeclaredFieldRejected(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(memStore{})

	_, err := repo.Store(context.Background(), Attributes{"title": "x", "sneaky": true})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestStore_TypeMismatchRejected(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(memStore{})

	_, err := repo.Store(context.Background(), Attributes{"title": 42})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Problems[0], "string")
}

func TestStore_DynamicFieldAcceptsAnything(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(memStore{})

	_, err := repo.Store(context.Background(), Attributes{
		"title": "x",
		"extra": map[string]any{"nested": true},
	})
	require.NoError(t, err)
}

func TestStore_NoDeclaredFieldsAcceptsAnyPayload(t *testing.T) {
	t.Parallel()
	desc := Descriptor{Key: "free", ModelType: "testModel"}
	repo := NewStoreBacked(desc, func() Model { return &testModel{} }, memStore{})

	_, err := repo.Store(context.Background(), Attributes{"whatever": 1})
	require.NoError(t, err)
}

func TestUpdate_MergesOverExisting(t *testing.T) {
	t.Parallel()
	st := memStore{}
	repo := newTestRepo(st)
	ctx := context.Background()

	created, err := repo.Store(ctx, Attributes{"title": "before", "views": float64(1)})
	require.NoError(t, err)
	id := created["id"].(string)

	updated, err := repo.Update(ctx, id, Attributes{"title": "after"})
	require.NoError(t, err)
	assert.Equal(t, "after", updated["title"])
	assert.Equal(t, float64(1), updated["views"], "unmentioned attributes are kept")
	assert.Equal(t, id, updated["id"], "updates cannot change the id")
}

func TestUpdate_MissingRecord(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(memStore{})

	_, err := repo.Update(context.Background(), "nope", Attributes{"title": "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDestroy_MissingRecord(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(memStore{})

	err := repo.Destroy(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSearch_MatchesStringAttributes(t *testing.T) {
	t.Parallel()
	st := memStore{}
	repo := newTestRepo(st)
	ctx := context.Background()

	_, err := repo.Store(ctx, Attributes{"title": "Going to the Market"})
	require.NoError(t, err)
	_, err = repo.Store(ctx, Attributes{"title": "Unrelated"})
	require.NoError(t, err)

	matches, err := repo.Search(ctx, "market")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Going to the Market", matches[0]["title"])
}

func TestTable_DescriptorOverride(t *testing.T) {
	t.Parallel()
	desc := Descriptor{Key: "things", Table: "override"}
	repo := NewStoreBacked(desc, func() Model { return &testModel{} }, memStore{})

	assert.Equal(t, "override", repo.Table())
	assert.Equal(t, "things", newTestRepo(memStore{}).Table())
}
