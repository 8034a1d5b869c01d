// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// Notes is the repository for note records stored locally on the device.
	Notes NoteRepository

	// Conflicts is the repository for open and resolved sync conflicts.
	Conflicts ConflictRepository

	// Metadata is the key/value repository used to persist sync metadata.
	Metadata MetadataRepository

	// Degraded is true when the SQLite database could not be opened and the
	// JSON-file fallback store is in use.
	Degraded bool
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.MigrateClient].
//  3. Constructs and returns a [ClientStorages] value wired to the SQLite
//     repositories.
//
// If the SQLite store cannot be opened or migrated, the degraded JSON-file
// fallback store takes over. Notes remain editable and syncable in that mode;
// only indexed lookup performance is lost. An error is returned only when the
// fallback cannot be initialised either.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err == nil {
		if err = db.MigrateClient(); err == nil {
			return &ClientStorages{
				Notes:     NewLocalNoteRepository(db, logger),
				Conflicts: NewLocalConflictRepository(db, logger),
				Metadata:  NewLocalMetadataRepository(db, logger),
			}, nil
		}
	}

	logger.Warn().Err(err).Msg("sqlite store unavailable, switching to file fallback store")

	fallback, fbErr := NewFileFallbackStorage(cfg.DB.FallbackPath)
	if fbErr != nil {
		return nil, fmt.Errorf("sqlite store failed (%w) and fallback store failed: %w", err, fbErr)
	}

	return &ClientStorages{
		Notes:     fallback,
		Conflicts: fallback,
		Metadata:  fallback,
		Degraded:  true,
	}, nil
}
