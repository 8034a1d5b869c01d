package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/jackc/pgerrcode"
)

type serverNoteRepository struct {
	*DB
	logger *logger.Logger
}

func NewServerNoteRepository(db *DB, logger *logger.Logger) ServerNoteRepository {
	return &serverNoteRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *serverNoteRepository) GetNote(ctx context.Context, userID int64, id string) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getServerNote, userID, id)
	note, err := scanServerNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, ErrNoteNotFound
		}
		log.Err(err).
			Str("func", "serverNoteRepository.GetNote").
			Int64("user_id", userID).
			Str("note_id", id).
			Msg("failed to query note")
		return models.Note{}, fmt.Errorf("failed to query note (id=%s): %w", id, err)
	}

	return note, nil
}

// PutNote inserts the note on first push (expectedVersion == 0) or updates it
// with an optimistic remote_version check. The stored record with its new
// remote_version is returned so the client can record the watermark.
func (r *serverNoteRepository) PutNote(ctx context.Context, userID int64, note models.Note, expectedVersion int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	if expectedVersion == 0 {
		_, err := r.DB.ExecContext(ctx, insertServerNote,
			note.ID, userID, note.Title, note.Content, mustEncodeTags(note.Tags),
			note.CreatedAt, note.UpdatedAt, note.DeletedAt, note.WordCount,
		)
		if err != nil {
			if postgresError(err) == pgerrcode.UniqueViolation {
				// Another device pushed the same note first.
				return models.Note{}, ErrVersionConflict
			}
			log.Err(err).
				Str("func", "serverNoteRepository.PutNote").
				Int64("user_id", userID).
				Str("note_id", note.ID).
				Msg("failed to insert note")
			return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return r.GetNote(ctx, userID, note.ID)
	}

	res, err := r.DB.ExecContext(ctx, updateServerNote,
		userID, note.ID, note.Title, note.Content, mustEncodeTags(note.Tags),
		note.UpdatedAt, note.DeletedAt, note.WordCount, expectedVersion,
	)
	if err != nil {
		log.Err(err).
			Str("func", "serverNoteRepository.PutNote").
			Int64("user_id", userID).
			Str("note_id", note.ID).
			Msg("failed to update note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		if _, getErr := r.GetNote(ctx, userID, note.ID); errors.Is(getErr, ErrNoteNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, ErrVersionConflict
	}

	return r.GetNote(ctx, userID, note.ID)
}

func (r *serverNoteRepository) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listServerNotes, userID)
	if err != nil {
		log.Err(err).
			Str("func", "serverNoteRepository.ListNotes").
			Int64("user_id", userID).
			Msg("failed to query notes list")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, err := scanServerNote(rows)
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

func scanServerNote(row rowScanner) (models.Note, error) {
	var note models.Note
	var tags string
	var deletedAt sql.NullTime

	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&tags,
		&note.CreatedAt,
		&note.UpdatedAt,
		&deletedAt,
		&note.WordCount,
		&note.RemoteVersion,
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

	return note, nil
}

// mustEncodeTags encodes the tag set as JSON text. Marshalling a []string
// cannot fail, so the error path collapses to an empty set.
func mustEncodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
