// Package config implements the configuration format shared by the CLI and
// the parse service: a BurntSushi/toml-backed struct with the
// FillDefaults/Validate pattern the reference module uses for its own
// server configuration.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

const (
	MaxSecretSize = 64
	MinSecretSize = 32
)

// DBType is the type of audit-log database connection the parse service
// uses.
type DBType string

const (
	DatabaseNone     DBType = "none"
	DatabaseSQLite   DBType = "sqlite"
	DatabaseInMemory DBType = "inmem"
)

func (dbt DBType) String() string {
	return string(dbt)
}

// ParseDBType parses a string found in a connection string into a DBType.
func ParseDBType(s string) (DBType, error) {
	switch s {
	case DatabaseSQLite.String():
		return DatabaseSQLite, nil
	case DatabaseInMemory.String():
		return DatabaseInMemory, nil
	default:
		return DatabaseNone, fmt.Errorf("DB type not one of 'sqlite' or 'inmem': %q", s)
	}
}

// Database is the connection info for the parse service's audit log store.
type Database struct {
	// Type selects which of the other fields are meaningful.
	Type DBType

	// DataDir is where SQLite should store its database file. Unused for
	// DatabaseInMemory.
	DataDir string
}

// Validate returns an error if db is not a usable configuration.
func (db Database) Validate() error {
	switch db.Type {
	case DatabaseInMemory:
		return nil
	case DatabaseSQLite:
		if db.DataDir == "" {
			return fmt.Errorf("sqlite: DataDir not set to a path")
		}
		return nil
	default:
		return fmt.Errorf("unknown database type: %q", db.Type.String())
	}
}

// Dialect controls which PHP lexical dialect quirks the tokenizer accepts.
type Dialect struct {
	// ShortTagsEnabled, when true, makes a bare "<?" (not followed by "php"
	// or "=") open a PHP tag instead of being treated as literal inline
	// HTML. Mirrors PHP's short_open_tag ini setting; default off, matching
	// DESIGN.md's T_OPEN_TAG_FAKE decision.
	ShortTagsEnabled bool
}

// Config is the full configuration for the parse service and its CLI.
type Config struct {
	// ListenAddress is the host:port the HTTP server binds to.
	ListenAddress string

	// AuthSecret signs the bearer tokens the parse service issues. If unset,
	// FillDefaults substitutes a development-only default.
	AuthSecret []byte

	// DB is the audit log's backing store.
	DB Database

	// Dialect controls lexer-level PHP dialect quirks.
	Dialect Dialect
}

// Load reads and parses a TOML configuration file's contents.
func Load(data []byte) (Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// FillDefaults returns a copy of cfg with unset fields set to their
// defaults.
func (cfg Config) FillDefaults() Config {
	out := cfg

	if out.ListenAddress == "" {
		out.ListenAddress = ":8080"
	}
	if out.AuthSecret == nil {
		out.AuthSecret = []byte("DEFAULT_AUTH_SECRET-DO_NOT_USE_IN_PROD!")
	}
	if out.DB.Type == "" || out.DB.Type == DatabaseNone {
		out.DB = Database{Type: DatabaseInMemory}
	}

	return out
}

// Validate returns an error if cfg has invalid or missing required field
// values. Call it on the result of FillDefaults so that defaulted fields
// are considered set.
func (cfg Config) Validate() error {
	if len(cfg.AuthSecret) < MinSecretSize {
		return fmt.Errorf("auth secret: must be at least %d bytes, but is %d", MinSecretSize, len(cfg.AuthSecret))
	}
	if len(cfg.AuthSecret) > MaxSecretSize {
		return fmt.Errorf("auth secret: must be no more than %d bytes, but is %d", MaxSecretSize, len(cfg.AuthSecret))
	}
	if cfg.ListenAddress == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if err := cfg.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	return nil
}
