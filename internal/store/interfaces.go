// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_store_mock.go -package=mock

// ServerNoteRepository is the remote-side repository for synchronized notes,
// one namespace per user. Writes are guarded by an optimistic remote-version
// check: a put whose expected version no longer matches the stored one fails
// with [ErrVersionConflict] so the client re-runs conflict detection.
type ServerNoteRepository interface {
	GetNote(ctx context.Context, userID int64, id string) (models.Note, error)
	PutNote(ctx context.Context, userID int64, note models.Note, expectedVersion int64) (models.Note, error)
	ListNotes(ctx context.Context, userID int64) ([]models.Note, error)
}

// UserRepository manages device-owner accounts on the remote server.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, string, error)
}
