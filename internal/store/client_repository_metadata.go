package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

type localMetadataRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalMetadataRepository(db *DB, logger *logger.Logger) MetadataRepository {
	return &localMetadataRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localMetadataRepository) GetMetadata(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	var value string
	err := l.DB.QueryRowContext(ctx, getMetadataValue, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMetadataNotFound
		}
		log.Err(err).
			Str("func", "localMetadataRepository.GetMetadata").
			Str("key", key).
			Msg("failed to query metadata value")
		return nil, fmt.Errorf("failed to query metadata (key=%s): %w", key, err)
	}

	return []byte(value), nil
}

func (l *localMetadataRepository) PutMetadata(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, upsertMetadata, key, string(value))
	if err != nil {
		log.Err(err).
			Str("func", "localMetadataRepository.PutMetadata").
			Str("key", key).
			Msg("failed to upsert metadata value")
		return fmt.Errorf("failed to save metadata (key=%s): %w", key, err)
	}

	return nil
}
