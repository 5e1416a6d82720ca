// Package lifecycle models the process-wide event hooks the hosting
// application can attach to as explicit, typed listener lists.
//
// Listeners are invoked synchronously, in registration order, exactly
// once per event occurrence. Hooks is not safe for concurrent listener
// registration; attach everything during startup, before serving begins.
package lifecycle

import (
	"context"
	"net/http"
)

// StartingFunc runs once when the application starts serving.
type StartingFunc func(ctx context.Context)

// BeforeEachFunc runs before every dispatched repository operation.
type BeforeEachFunc func(ctx context.Context, r *http.Request)

// ExceptionFunc runs when a dispatched operation fails with a
// server-side error.
type ExceptionFunc func(ctx context.Context, r *http.Request, err error)

// Hooks holds the registered listeners for each lifecycle event.
type Hooks struct {
	starting   []StartingFunc
	beforeEach []BeforeEachFunc
	exception  []ExceptionFunc
}

// New creates an empty Hooks instance.
func New() *Hooks {
	return &Hooks{}
}

// OnStarting registers a listener for the starting event.
func (h *Hooks) OnStarting(fn StartingFunc) {
	h.starting = append(h.starting, fn)
}

// OnBeforeEach registers a listener invoked before each repository
// operation.
func (h *Hooks) OnBeforeEach(fn BeforeEachFunc) {
	h.beforeEach = append(h.beforeEach, fn)
}

// OnException registers a listener for server-side dispatch failures.
func (h *Hooks) OnException(fn ExceptionFunc) {
	h.exception = append(h.exception, fn)
}

// EmitStarting invokes every starting listener in registration order.
func (h *Hooks) EmitStarting(ctx context.Context) {
	for _, fn := range h.starting {
		fn(ctx)
	}
}

// EmitBeforeEach invokes every before-each listener in registration order.
func (h *Hooks) EmitBeforeEach(ctx context.Context, r *http.Request) {
	for _, fn := range h.beforeEach {
		fn(ctx, r)
	}
}

// EmitException invokes every exception listener in registration order.
func (h *Hooks) EmitException(ctx context.Context, r *http.Request, err error) {
	for _, fn := range h.exception {
		fn(ctx, r, err)
	}
}
