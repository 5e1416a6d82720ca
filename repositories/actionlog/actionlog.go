// Package actionlog provides the repository that records dispatched
// repository actions. It is wired up through the api configuration's
// action_log_repository key; without that key the repository is a plain
// resource like any other.
package actionlog

import (
	"context"

	"github.com/vk/restifygo/internal/registry"
	"github.com/vk/restifygo/internal/repository"
	"github.com/vk/restifygo/internal/store"
)

// Entry is one recorded action dispatch.
type Entry struct {
	ID         string `json:"id"`
	Repository string `json:"repository"`
	RecordID   string `json:"record_id"`
	Action     string `json:"action"`
	Path       string `json:"path"`
}

// TableName reports the storage table for action log entries.
func (Entry) TableName() string {
	return "action_logs"
}

// NewRepository builds the action-log repository over the given store.
// The write surface is undeclared on purpose: entries are written by the
// dispatch engine, not validated user input.
func NewRepository(st store.Store) *repository.StoreBacked {
	desc := repository.Descriptor{
		Key:       "action-logs",
		Label:     "Action log",
		ModelType: "ActionLogEntry",
	}
	return repository.NewStoreBacked(desc, func() repository.Model { return &Entry{} }, st)
}

// Module implements the registry.Module interface for the action log.
type Module struct {
	Store store.Store
}

// Register registers the module's model factory and repository.
func (m *Module) Register(ctx context.Context, r *registry.Registry) error {
	r.RegisterModel("ActionLogEntry", func() repository.Model { return &Entry{} })
	return r.Register(ctx, NewRepository(m.Store))
}
