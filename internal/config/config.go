// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
)

// StructuredConfig is the top-level configuration container for the
// go-note-keeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters and the
	// application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the persistence backends: the server
	// Postgres database and the on-device SQLite store with its file-based
	// fallback.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote-store endpoint settings used by the client
	// transport layer.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds the synchronization engine settings: conflict resolution
	// strategy, background pass interval and tombstone retention.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// lifecycle and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Fallback holds the path of the degraded JSON file store used when the
	// SQLite database cannot be opened on the device.
	Fallback Fallback `envPrefix:"FALLBACK_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the Data Source Name used to open the database connection.
	// Postgres DSN on the server, SQLite file path on the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Fallback holds file-system settings for the degraded local store.
type Fallback struct {
	// Path is the JSON file used by the fallback store.
	// Env: STORAGE_FALLBACK_PATH
	Path string `env:"PATH"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the remote notes server endpoint used by the client.
type Adapter struct {
	// HTTPAddress is the base URL of the remote notes server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Login is the account name the client authenticates with before the
	// first sync pass.
	// Env: ADAPTER_LOGIN
	Login string `env:"LOGIN"`

	// Password is the account password paired with Login. Must be kept
	// confidential.
	// Env: ADAPTER_PASSWORD
	Password string `env:"PASSWORD"`
}

// Sync holds the synchronization engine settings.
type Sync struct {
	// Strategy selects the conflict resolution strategy applied during a
	// sync pass. One of: last-write-wins, local-priority, remote-priority,
	// manual. Defaults to last-write-wins.
	// Env: SYNC_STRATEGY
	Strategy string `env:"STRATEGY"`

	// Interval defines how often the background sync job runs.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// Retention is how long soft-deleted notes are kept before the purge
	// worker removes them permanently.
	// Env: SYNC_RETENTION
	Retention time.Duration `env:"RETENTION"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// ResolutionStrategy maps the configured strategy string onto the model
// constant, defaulting to last-write-wins when unset.
func (s Sync) ResolutionStrategy() models.ConflictResolutionStrategy {
	if s.Strategy == "" {
		return models.StrategyLastWriteWins
	}
	return models.ConflictResolutionStrategy(s.Strategy)
}
