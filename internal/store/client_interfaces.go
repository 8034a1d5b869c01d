// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// NoteRepository is the local store adapter contract consumed by the sync
// engine and the note service. The SQLite-backed implementation is the
// primary one; a degraded JSON-file implementation is used when SQLite is
// unavailable on the device.
type NoteRepository interface {
	// Get returns the note with the given id, including soft-deleted notes.
	// Returns [ErrNoteNotFound] if the id is unknown.
	Get(ctx context.Context, id string) (models.Note, error)

	// Put inserts or fully replaces a note record.
	Put(ctx context.Context, note models.Note) error

	// Delete removes the note permanently. Used only for the hard purge
	// after the tombstone retention window, never during a sync pass.
	Delete(ctx context.Context, id string) error

	// ListAll returns every note in the store. Soft-deleted notes are
	// excluded unless includeDeleted is true.
	ListAll(ctx context.Context, includeDeleted bool) ([]models.Note, error)
}

// MetadataRepository persists arbitrary metadata blobs keyed by name. The
// sync engine uses it to store [models.SyncMetadata] independently of note
// data so status survives across sessions.
type MetadataRepository interface {
	// GetMetadata returns the raw value stored under key, or
	// [ErrMetadataNotFound] if the key was never written.
	GetMetadata(ctx context.Context, key string) ([]byte, error)

	// PutMetadata inserts or replaces the value stored under key.
	PutMetadata(ctx context.Context, key string, value []byte) error
}

// ConflictRepository persists sync conflicts: open ones awaiting a manual
// decision and resolved ones kept as an audit log. The engine never deletes
// conflict records.
type ConflictRepository interface {
	// SaveConflict inserts a new conflict record.
	SaveConflict(ctx context.Context, conflict models.SyncConflict) error

	// GetConflict returns the conflict with the given id or
	// [ErrConflictNotFound].
	GetConflict(ctx context.Context, conflictID string) (models.SyncConflict, error)

	// UpdateConflict replaces an existing conflict record, typically to mark
	// it resolved. Returns [ErrConflictNotFound] for unknown ids.
	UpdateConflict(ctx context.Context, conflict models.SyncConflict) error

	// ListOpenConflicts returns all conflicts with no resolution yet.
	ListOpenConflicts(ctx context.Context) ([]models.SyncConflict, error)
}
