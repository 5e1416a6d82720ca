// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface for reading it from various
// sources.
//
// The config.Model is the single source of truth for the registry and the
// routing layer. The concrete HCL implementation lives in a separate
// package.
package config
