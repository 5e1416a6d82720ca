package posts

import (
	"context"

	"github.com/vk/restifygo/internal/registry"
	"github.com/vk/restifygo/internal/repository"
	"github.com/vk/restifygo/internal/store"
)

// Module implements the registry.Module interface. It registers the Post
// model factory and the posts repository with the application's registry.
type Module struct {
	Store store.Store
}

// Register registers the module's model factory and repository.
func (m *Module) Register(ctx context.Context, r *registry.Registry) error {
	r.RegisterModel("Post", func() repository.Model { return &Post{} })
	return r.Register(ctx, NewRepository(m.Store))
}
