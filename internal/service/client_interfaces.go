// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientNoteService defines the client-side contract for managing notes in
// the on-device store. All operations are local; propagation to the server
// happens through [ClientSyncService].
type ClientNoteService interface {
	// Create builds a new note with a fresh id, computes its word count and
	// saves it locally with status pending. Returns [ErrValidation] when both
	// title and content are empty.
	Create(ctx context.Context, title, content string, tags []string) (models.Note, error)

	// Get returns a single note by id. Tombstoned notes remain resolvable by
	// id until purged.
	Get(ctx context.Context, id string) (models.Note, error)

	// Update replaces the note's title, content and tags, bumping its local
	// version and recomputing the word count. Returns [ErrNoteNotFound] for
	// unknown or tombstoned ids.
	Update(ctx context.Context, id, title, content string, tags []string) (models.Note, error)

	// Delete soft-deletes the note: it sets the tombstone and bumps the local
	// version so the deletion propagates on the next sync pass.
	Delete(ctx context.Context, id string) error

	// Restore clears the tombstone from a soft-deleted note.
	Restore(ctx context.Context, id string) (models.Note, error)

	// List returns notes ordered newest-first. Tombstoned notes are hidden
	// unless includeDeleted is set.
	List(ctx context.Context, includeDeleted bool) ([]models.Note, error)
}

// ConflictDetector decides whether two copies of a note truly diverged.
// Implementations must be pure: no clock reads besides stamping the
// detection time, no store access.
type ConflictDetector interface {
	// Detect compares the local and remote copies against the local
	// watermark (lastSyncedAt; nil means never synced). It reports a
	// conflict only when both sides changed since the watermark. The
	// returned conflict carries full snapshots of both sides.
	Detect(local, remote models.Note) (models.SyncConflict, bool)
}

// ResolutionOutcome is the resolver's verdict on a conflict.
type ResolutionOutcome struct {
	// Resolved is false when the strategy defers to the user (manual).
	Resolved bool

	// Winner is the surviving record, already stamped with the sync
	// watermark and status synced. Only meaningful when Resolved is true.
	Winner models.Note

	// WinnerOrigin reports which side won, for logging and audit records.
	WinnerOrigin models.SyncOrigin
}

// ConflictResolver applies a resolution strategy to a detected conflict.
type ConflictResolver interface {
	// Resolve picks the surviving record according to strategy. The entire
	// losing record is discarded; there is no field-level merge. Returns
	// [ErrValidation] for an unknown strategy.
	Resolve(conflict models.SyncConflict, strategy models.ConflictResolutionStrategy, syncTime time.Time) (ResolutionOutcome, error)
}

// ClientSyncService is the sync orchestrator: it reconciles the local store
// against the remote copy, persists conflicts and keeps the sync metadata
// bookkeeping current.
type ClientSyncService interface {
	// FullSync lists the local store (tombstones included) and runs SyncNotes
	// over it. This is what the background job calls.
	FullSync(ctx context.Context, origin models.SyncOrigin) (models.SyncResult, error)

	// SyncNotes runs one sync pass over the given pass-start snapshot of
	// local notes. At most one pass runs at a time: a second concurrent call
	// fails fast with [ErrSyncInProgress] and performs no writes. Per-note
	// failures are collected in the result and do not abort the pass;
	// [ErrSyncDisabled] and remote listing failures abort it.
	SyncNotes(ctx context.Context, localNotes []models.Note, origin models.SyncOrigin) (models.SyncResult, error)

	// ResolveConflictManually settles an open conflict with the caller's
	// chosen record, writes it to both stores with bumped versions and
	// closes the conflict. Returns [ErrConflictNotFound] for unknown ids,
	// [ErrAlreadyResolved] on a second call and [ErrValidation] when the
	// chosen note does not belong to the conflict.
	ResolveConflictManually(ctx context.Context, conflictID string, chosen models.Note) (models.SyncConflict, error)

	// ListOpenConflicts returns conflicts awaiting manual resolution,
	// oldest detection first.
	ListOpenConflicts(ctx context.Context) ([]models.SyncConflict, error)

	// GetSyncMetadata returns the persisted sync bookkeeping. A store that
	// has never synced yields the zero metadata with sync enabled.
	GetSyncMetadata(ctx context.Context) (models.SyncMetadata, error)

	// SetSyncEnabled toggles the sync engine. Disabling does not interrupt
	// a pass already in flight; the next pass fails with [ErrSyncDisabled].
	SetSyncEnabled(ctx context.Context, enabled bool) error

	// PurgeDeleted hard-deletes tombstoned notes older than the retention
	// window and returns how many were removed.
	PurgeDeleted(ctx context.Context, olderThan time.Duration) (int, error)
}

// ClientSyncJob is a background worker that periodically runs a full sync
// pass for the device.
type ClientSyncJob interface {
	// Start launches the background goroutine syncing every interval. Any
	// previously running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the goroutine to exit and blocks until it has terminated.
	Stop()
}
