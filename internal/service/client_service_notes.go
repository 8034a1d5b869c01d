// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

type clientNoteService struct {
	notes  store.NoteRepository
	uuid   *utils.UUIDGenerator
	logger *logger.Logger
	now    func() time.Time
}

func NewClientNoteService(notes store.NoteRepository, logger *logger.Logger) ClientNoteService {
	return &clientNoteService{
		notes:  notes,
		uuid:   utils.NewUUIDGenerator(),
		logger: logger,
		now:    time.Now,
	}
}

// Create implements [ClientNoteService].
func (s *clientNoteService) Create(ctx context.Context, title, content string, tags []string) (models.Note, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(content) == "" {
		return models.Note{}, fmt.Errorf("%w: note needs a title or content", ErrValidation)
	}

	now := s.now()
	note := models.Note{
		ID:        s.uuid.Generate(),
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
	}
	note.Touch(now)

	if err := s.notes.Put(ctx, note); err != nil {
		return models.Note{}, fmt.Errorf("%w: save note: %w", ErrStoreUnavailable, err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "clientNoteService.Create").
		Str("note_id", note.ID).
		Msg("note created")

	return note, nil
}

// Get implements [ClientNoteService].
func (s *clientNoteService) Get(ctx context.Context, id string) (models.Note, error) {
	note, err := s.notes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, fmt.Errorf("%w: load note: %w", ErrStoreUnavailable, err)
	}
	return note, nil
}

// Update implements [ClientNoteService]. Tombstoned notes cannot be edited;
// restore them first.
func (s *clientNoteService) Update(ctx context.Context, id, title, content string, tags []string) (models.Note, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return models.Note{}, err
	}
	if note.Deleted() {
		return models.Note{}, ErrNoteNotFound
	}

	note.Title = title
	note.Content = content
	note.Tags = tags
	note.Touch(s.now())

	if err = s.notes.Put(ctx, note); err != nil {
		return models.Note{}, fmt.Errorf("%w: save note: %w", ErrStoreUnavailable, err)
	}

	return note, nil
}

// Delete implements [ClientNoteService]. The tombstone is an ordinary field
// change: the bumped local version carries the deletion to the server on the
// next sync pass.
func (s *clientNoteService) Delete(ctx context.Context, id string) error {
	note, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if note.Deleted() {
		return nil
	}

	now := s.now()
	note.DeletedAt = &now
	note.Touch(now)

	if err = s.notes.Put(ctx, note); err != nil {
		return fmt.Errorf("%w: save note: %w", ErrStoreUnavailable, err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "clientNoteService.Delete").
		Str("note_id", id).
		Msg("note soft-deleted")

	return nil
}

// Restore implements [ClientNoteService].
func (s *clientNoteService) Restore(ctx context.Context, id string) (models.Note, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return models.Note{}, err
	}
	if !note.Deleted() {
		return note, nil
	}

	note.DeletedAt = nil
	note.Touch(s.now())

	if err = s.notes.Put(ctx, note); err != nil {
		return models.Note{}, fmt.Errorf("%w: save note: %w", ErrStoreUnavailable, err)
	}

	return note, nil
}

// List implements [ClientNoteService].
func (s *clientNoteService) List(ctx context.Context, includeDeleted bool) ([]models.Note, error) {
	notes, err := s.notes.ListAll(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("%w: list notes: %w", ErrStoreUnavailable, err)
	}
	return notes, nil
}
