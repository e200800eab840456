package types

import (
	"errors"
	"fmt"
)

// Config holds backend selection and parameters for Backend.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return fmt.Errorf("%w %q", ErrBackendUnknown, c.Backend)
	}
	return nil
}

// DatabaseFile is the SQLite file created inside DataDir.
const DatabaseFile = "shelf.db"

// DefaultConfig returns a SQLite config rooted at dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{Backend: BackendSQLite, DataDir: dataDir}
}
