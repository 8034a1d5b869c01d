package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// NoteService is the server-side notes contract consumed by the HTTP
// handlers. Every operation is scoped to the authenticated user.
type NoteService interface {
	// GetNote returns one of userID's notes by id.
	GetNote(ctx context.Context, userID int64, id string) (models.Note, error)

	// PutNote stores a note pushed by a device. expectedVersion is the
	// remote_version the device last observed; zero means a first push.
	// Returns the stored record with its advanced version.
	PutNote(ctx context.Context, userID int64, note models.Note, expectedVersion int64) (models.Note, error)

	// ListNotes returns every note userID owns, tombstones included, so
	// deletions propagate to other devices.
	ListNotes(ctx context.Context, userID int64) ([]models.Note, error)
}

// AuthService handles account registration, credential verification and the
// JWT token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
