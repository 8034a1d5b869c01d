// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// noteService is the concrete implementation of [NoteService]. The server is
// a passive counterparty to the device-side sync engine: it stores whatever
// the devices push and arbitrates concurrent pushes purely through the
// optimistic remote_version check in the repository.
type noteService struct {
	notes  store.ServerNoteRepository
	logger *logger.Logger
}

func NewNoteService(notes store.ServerNoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		notes:  notes,
		logger: logger,
	}
}

// GetNote implements [NoteService].
func (s *noteService) GetNote(ctx context.Context, userID int64, id string) (models.Note, error) {
	if id == "" {
		return models.Note{}, fmt.Errorf("%w: note id is required", ErrValidation)
	}

	note, err := s.notes.GetNote(ctx, userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, fmt.Errorf("%w: load note: %w", ErrStoreUnavailable, err)
	}

	return note, nil
}

// PutNote implements [NoteService]. Version conflicts bubble up unchanged so
// the handler can answer 409.
func (s *noteService) PutNote(ctx context.Context, userID int64, note models.Note, expectedVersion int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	if note.ID == "" {
		return models.Note{}, fmt.Errorf("%w: note id is required", ErrValidation)
	}
	if expectedVersion < 0 {
		return models.Note{}, fmt.Errorf("%w: negative expected version", ErrValidation)
	}

	stored, err := s.notes.PutNote(ctx, userID, note, expectedVersion)
	if err != nil {
		if errors.Is(err, store.ErrVersionConflict) || errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, err
		}
		log.Err(err).
			Str("func", "noteService.PutNote").
			Int64("user_id", userID).
			Str("note_id", note.ID).
			Msg("note save ended with error")
		return models.Note{}, fmt.Errorf("%w: save note: %w", ErrStoreUnavailable, err)
	}

	return stored, nil
}

// ListNotes implements [NoteService].
func (s *noteService) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	notes, err := s.notes.ListNotes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list notes: %w", ErrStoreUnavailable, err)
	}
	return notes, nil
}
