// Package registry provides the central directory of the repository
// system.
//
// The Registry maps the string URI keys used in request paths to the
// repository implementations that serve them. It is populated during
// application startup, by explicit registration calls from Go modules and
// by loading declarative manifests from a directory, and is read-only
// thereafter: every lookup is a linear scan over the registered set.
//
// A Registry is an explicit object constructed once at startup and passed
// by reference into the routing layer. There is no package-level global,
// which keeps tests isolated and the data flow visible.
//
// Registration is expected to complete before request handling begins.
// Lookups take no lock; a registration racing an in-flight resolution has
// undefined outcome.
package registry
