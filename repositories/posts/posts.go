// Package posts provides the blog-post resource: a store-backed
// repository with a custom publish action.
package posts

import (
	"context"
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/restifygo/internal/repository"
	"github.com/vk/restifygo/internal/store"
)

// Post is the backing model for the posts resource.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName reports the storage table for posts.
func (Post) TableName() string {
	return "posts"
}

// Repository is the posts repository: generic store-backed CRUD plus a
// publish action.
type Repository struct {
	*repository.StoreBacked
	store store.Store
}

// NewRepository builds the posts repository over the given store.
func NewRepository(st store.Store) *Repository {
	desc := repository.Descriptor{
		Key:                "posts",
		Label:              "Posts",
		ModelType:          "Post",
		GloballySearchable: true,
		Fields: []repository.Field{
			{Name: "title", Type: cty.String},
			{Name: "body", Type: cty.String, Optional: true},
			{Name: "published", Type: cty.Bool, Optional: true},
		},
	}
	return &Repository{
		StoreBacked: repository.NewStoreBacked(desc, func() repository.Model { return &Post{} }, st),
		store:       st,
	}
}

// Actions exposes the publish action: flips the published flag on an
// existing post.
func (r *Repository) Actions() map[string]repository.Action {
	return map[string]repository.Action{
		"publish": r.publish,
	}
}

func (r *Repository) publish(ctx context.Context, id string, _ repository.Attributes) (any, error) {
	if id == "" {
		return nil, fmt.Errorf("publish requires a post id")
	}
	rec, err := r.store.Get(ctx, r.Table(), id)
	if err != nil {
		return nil, err
	}
	rec["published"] = true
	if err := r.store.Put(ctx, r.Table(), id, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
