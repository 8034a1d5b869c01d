// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the remote notes server base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// Login is the remote account name used to authenticate at startup.
	Login string
	// Password is the remote account password paired with Login.
	Password string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path of the on-device store.
	DSN string
	// FallbackPath is the JSON file used by the degraded fallback store
	// when SQLite cannot be opened.
	FallbackPath string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync contains synchronization engine settings for the client.
type ClientSync struct {
	// Strategy is the conflict resolution strategy applied per sync pass.
	Strategy string
	// Interval defines how often the background sync job runs.
	Interval time.Duration
	// Retention is how long soft-deleted notes are kept before purge.
	Retention time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains synchronization engine settings.
	Sync ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Login:          cfg.Adapter.Login,
			Password:       cfg.Adapter.Password,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN:          cfg.Storage.DB.DSN,
				FallbackPath: cfg.Storage.Fallback.Path,
			},
		},
		Sync: ClientSync{
			Strategy:  cfg.Sync.Strategy,
			Interval:  cfg.Sync.Interval,
			Retention: cfg.Sync.Retention,
		},
	}

	return clientCfg, clientCfg.validate()
}
