package router

import (
	"context"
	"errors"
	"net/url"

	"github.com/vk/restifygo/internal/repository"
)

var errBroken = errors.New("backing store exploded")

// failingRepo fails every operation, for exercising the 500 path.
type failingRepo struct{}

type brokenModel struct{}

func (brokenModel) TableName() string { return "broken" }

func (*failingRepo) Descriptor() repository.Descriptor {
	return repository.Descriptor{Key: "posts", Label: "Broken posts"}
}
func (*failingRepo) NewModel() repository.Model { return &brokenModel{} }
func (*failingRepo) List(context.Context, url.Values) ([]repository.Attributes, error) {
	return nil, errBroken
}
func (*failingRepo) Show(context.Context, string) (repository.Attributes, error) {
	return nil, errBroken
}
func (*failingRepo) Store(context.Context, repository.Attributes) (repository.Attributes, error) {
	return nil, errBroken
}
func (*failingRepo) Update(context.Context, string, repository.Attributes) (repository.Attributes, error) {
	return nil, errBroken
}
func (*failingRepo) Destroy(context.Context, string) error { return errBroken }
func (*failingRepo) Search(context.Context, string) ([]repository.Attributes, error) {
	return nil, errBroken
}
func (*failingRepo) Actions() map[string]repository.Action { return nil }
