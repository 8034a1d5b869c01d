// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer access to the remote notes server.
//
// The primary abstraction is [RemoteStore], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteStore]); error values defined in errors.go are mapped from
// HTTP status codes by mapHTTPError so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrVersionConflict] for 409).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines transport-agnostic communication with the remote notes
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type RemoteStore interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. It should be called right after a successful
	// Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account on the remote server. On success it
	// stores the returned bearer token via SetToken.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates the user with the server. On success it stores the
	// returned bearer token via SetToken.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// Get fetches a single note by id. Returns [ErrNoteNotFound] when the
	// server has no record of it.
	Get(ctx context.Context, id string) (models.Note, error)

	// Put writes a note to the server. expectedVersion carries the
	// remote_version the client last observed; zero means a first push.
	// Returns the stored record with its new remote_version, or
	// [ErrVersionConflict] when another device advanced the version first.
	Put(ctx context.Context, note models.Note, expectedVersion int64) (models.Note, error)

	// ListAll fetches every note owned by the authenticated user, tombstones
	// included.
	ListAll(ctx context.Context) ([]models.Note, error)
}
