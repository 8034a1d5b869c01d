package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// localConflictRepository stores sync conflicts in the on-device SQLite
// database. The note snapshots inside a conflict are persisted as JSON blobs:
// they are immutable audit data and never queried field-by-field.
type localConflictRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	return &localConflictRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localConflictRepository) SaveConflict(ctx context.Context, conflict models.SyncConflict) error {
	return l.upsert(ctx, conflict, "localConflictRepository.SaveConflict")
}

func (l *localConflictRepository) UpdateConflict(ctx context.Context, conflict models.SyncConflict) error {
	if _, err := l.GetConflict(ctx, conflict.ConflictID); err != nil {
		return err
	}
	return l.upsert(ctx, conflict, "localConflictRepository.UpdateConflict")
}

func (l *localConflictRepository) upsert(ctx context.Context, conflict models.SyncConflict, caller string) error {
	log := logger.FromContext(ctx)

	localNote, err := json.Marshal(conflict.LocalNote)
	if err != nil {
		return fmt.Errorf("failed to encode local snapshot: %w", err)
	}
	remoteNote, err := json.Marshal(conflict.RemoteNote)
	if err != nil {
		return fmt.Errorf("failed to encode remote snapshot: %w", err)
	}

	var resolvedNote *string
	if conflict.ResolvedNote != nil {
		encoded, err := json.Marshal(conflict.ResolvedNote)
		if err != nil {
			return fmt.Errorf("failed to encode resolved note: %w", err)
		}
		s := string(encoded)
		resolvedNote = &s
	}

	var resolution *string
	if conflict.Resolution != nil {
		s := string(*conflict.Resolution)
		resolution = &s
	}

	_, err = l.DB.ExecContext(ctx, upsertConflict,
		conflict.ConflictID,
		conflict.NoteID,
		string(localNote),
		string(remoteNote),
		conflict.DetectedAt,
		resolution,
		conflict.ResolvedAt,
		resolvedNote,
	)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Str("conflict_id", conflict.ConflictID).
			Str("note_id", conflict.NoteID).
			Msg("failed to execute upsert for sync conflict")
		return fmt.Errorf("failed to save conflict (id=%s): %w", conflict.ConflictID, err)
	}

	return nil
}

func (l *localConflictRepository) GetConflict(ctx context.Context, conflictID string) (models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	row := l.DB.QueryRowContext(ctx, getSingleConflict, conflictID)
	conflict, err := scanConflict(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SyncConflict{}, ErrConflictNotFound
		}
		log.Err(err).
			Str("func", "localConflictRepository.GetConflict").
			Str("conflict_id", conflictID).
			Msg("failed to query sync conflict")
		return models.SyncConflict{}, fmt.Errorf("failed to query conflict (id=%s): %w", conflictID, err)
	}

	return conflict, nil
}

func (l *localConflictRepository) ListOpenConflicts(ctx context.Context) ([]models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, listOpenConflicts)
	if err != nil {
		log.Err(err).
			Str("func", "localConflictRepository.ListOpenConflicts").
			Msg("failed to query open conflicts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var conflicts []models.SyncConflict
	for rows.Next() {
		conflict, err := scanConflict(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		conflicts = append(conflicts, conflict)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return conflicts, nil
}

func scanConflict(row rowScanner) (models.SyncConflict, error) {
	var conflict models.SyncConflict
	var localNote, remoteNote string
	var resolution, resolvedNote sql.NullString
	var resolvedAt sql.NullTime

	err := row.Scan(
		&conflict.ConflictID,
		&conflict.NoteID,
		&localNote,
		&remoteNote,
		&conflict.DetectedAt,
		&resolution,
		&resolvedAt,
		&resolvedNote,
	)
	if err != nil {
		return models.SyncConflict{}, err
	}

	if err = json.Unmarshal([]byte(localNote), &conflict.LocalNote); err != nil {
		return models.SyncConflict{}, fmt.Errorf("failed to decode local snapshot: %w", err)
	}
	if err = json.Unmarshal([]byte(remoteNote), &conflict.RemoteNote); err != nil {
		return models.SyncConflict{}, fmt.Errorf("failed to decode remote snapshot: %w", err)
	}

	if resolution.Valid {
		strategy := models.ConflictResolutionStrategy(resolution.String)
		conflict.Resolution = &strategy
	}
	conflict.ResolvedAt = nullTimePtr(resolvedAt)
	if resolvedNote.Valid {
		var note models.Note
		if err = json.Unmarshal([]byte(resolvedNote.String), &note); err != nil {
			return models.SyncConflict{}, fmt.Errorf("failed to decode resolved note: %w", err)
		}
		conflict.ResolvedNote = &note
	}

	return conflict, nil
}
