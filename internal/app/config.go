package app

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath       string // api settings, hcl
	RepositoriesPath string // repository manifests, hcl

	DatabasePath string // sqlite file; empty selects the in-memory store
	Port         int

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	// All fields have workable zero values: no config file, no manifest
	// directory, in-memory store, ephemeral port. Future validations for
	// individual fields can be added here.
	return &cfg, nil
}
