package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

type localNoteRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	return &localNoteRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localNoteRepository) Put(ctx context.Context, note models.Note) error {
	log := logger.FromContext(ctx)

	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags for note %s: %w", note.ID, err)
	}

	_, err = l.DB.ExecContext(ctx, upsertNote,
		note.ID,
		note.Title,
		note.Content,
		string(tags),
		note.CreatedAt,
		note.UpdatedAt,
		note.DeletedAt,
		note.WordCount,
		note.LocalVersion,
		note.RemoteVersion,
		note.LastSyncedAt,
		string(note.SyncStatus),
	)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.Put").
			Str("note_id", note.ID).
			Msg("failed to execute upsert for note")
		return fmt.Errorf("failed to save note (id=%s): %w", note.ID, err)
	}

	return nil
}

func (l *localNoteRepository) Get(ctx context.Context, id string) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := l.DB.QueryRowContext(ctx, getSingleNote, id)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).
			Str("func", "localNoteRepository.Get").
			Str("note_id", id).
			Msg("failed to query requested note")
		return models.Note{}, fmt.Errorf("failed to query note (id=%s): %w", id, err)
	}

	return note, nil
}

func (l *localNoteRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	res, err := l.DB.ExecContext(ctx, purgeNote, id)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.Delete").
			Str("note_id", id).
			Msg("failed to purge note")
		return fmt.Errorf("failed to purge note (id=%s): %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

func (l *localNoteRepository) ListAll(ctx context.Context, includeDeleted bool) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListNotesQuery(includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.ListAll").
			Msg("failed to query notes list")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var note models.Note
	var tags string
	var deletedAt, lastSyncedAt sql.NullTime
	var status string

	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&tags,
		&note.CreatedAt,
		&note.UpdatedAt,
		&deletedAt,
		&note.WordCount,
		&note.LocalVersion,
		&note.RemoteVersion,
		&lastSyncedAt,
		&status,
	)
	if err != nil {
		return models.Note{}, err
	}

	if tags != "" {
		if err = json.Unmarshal([]byte(tags), &note.Tags); err != nil {
			return models.Note{}, fmt.Errorf("failed to decode tags: %w", err)
		}
	}
	note.DeletedAt = nullTimePtr(deletedAt)
	note.LastSyncedAt = nullTimePtr(lastSyncedAt)
	note.SyncStatus = models.SyncStatus(status)

	return note, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
