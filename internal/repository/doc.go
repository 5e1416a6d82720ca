// Package repository defines the capability contract that every REST
// resource exposes to the rest of the system: a URI key, a backing model,
// CRUD operations, and optional named actions.
//
// Concrete repositories come from two places. Go code can implement the
// Repository interface directly (see the repositories/ tree), or a
// StoreBacked repository can be built from a declarative manifest at load
// time. Both are registered with the central registry and are
// indistinguishable to the routing layer.
package repository
