// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// Storages groups the server-side repositories.
type Storages struct {
	Users UserRepository
	Notes ServerNoteRepository
}

// NewStorages connects to Postgres, applies pending schema migrations and
// wires up the server repositories.
func NewStorages(ctx context.Context, cfg config.DB, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new server storages...")

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := db.MigrateServer(); err != nil {
		return nil, fmt.Errorf("migrating server schema: %w", err)
	}

	return &Storages{
		Users: NewUserRepository(db, logger),
		Notes: NewServerNoteRepository(db, logger),
	}, nil
}
