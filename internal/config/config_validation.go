// SPDX-License-Identifier: Apache-2.0

package config

import "github.com/MKhiriev/go-note-keeper/models"

// validate checks that the final merged [StructuredConfig] satisfies the
// server-side invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.Strategy != "" && !models.ConflictResolutionStrategy(cfg.Sync.Strategy).Valid() {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Adapter.Login == "" || cfg.Adapter.Password == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.Interval == 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Sync.Strategy != "" && !models.ConflictResolutionStrategy(cfg.Sync.Strategy).Valid() {
		return ErrInvalidSyncConfigs
	}

	return nil
}
