// Package users provides the user resource as a store-backed repository.
package users

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/restifygo/internal/registry"
	"github.com/vk/restifygo/internal/repository"
	"github.com/vk/restifygo/internal/store"
)

// User is the backing model for the users resource.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TableName reports the storage table for users.
func (User) TableName() string {
	return "users"
}

// NewRepository builds the users repository over the given store.
func NewRepository(st store.Store) *repository.StoreBacked {
	desc := repository.Descriptor{
		Key:                "users",
		Label:              "Users",
		ModelType:          "User",
		GloballySearchable: true,
		Fields: []repository.Field{
			{Name: "name", Type: cty.String},
			{Name: "email", Type: cty.String},
		},
	}
	return repository.NewStoreBacked(desc, func() repository.Model { return &User{} }, st)
}

// Module implements the registry.Module interface for the users resource.
type Module struct {
	Store store.Store
}

// Register registers the module's model factory and repository.
func (m *Module) Register(ctx context.Context, r *registry.Registry) error {
	r.RegisterModel("User", func() repository.Model { return &User{} })
	return r.Register(ctx, NewRepository(m.Store))
}
