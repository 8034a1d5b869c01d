// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// ConflictResolutionStrategy selects how a detected conflict is settled
// within a sync pass.
type ConflictResolutionStrategy string

const (
	// StrategyLastWriteWins picks the side with the later UpdatedAt.
	// Equal timestamps prefer the local record (documented tie-break).
	StrategyLastWriteWins ConflictResolutionStrategy = "last-write-wins"

	// StrategyLocalPriority always keeps the local record.
	StrategyLocalPriority ConflictResolutionStrategy = "local-priority"

	// StrategyRemotePriority always keeps the remote record.
	StrategyRemotePriority ConflictResolutionStrategy = "remote-priority"

	// StrategyManual leaves the conflict open for the user to decide.
	StrategyManual ConflictResolutionStrategy = "manual"
)

// Valid reports whether s is one of the four known strategies.
func (s ConflictResolutionStrategy) Valid() bool {
	switch s {
	case StrategyLastWriteWins, StrategyLocalPriority, StrategyRemotePriority, StrategyManual:
		return true
	}
	return false
}

// SyncOrigin tells the orchestrator which side initiated the pass. It is
// informational (logging, result labelling); the reconciliation rules are
// identical for both origins.
type SyncOrigin string

const (
	OriginLocal  SyncOrigin = "local"
	OriginRemote SyncOrigin = "remote"
)

// SyncConflict records a divergence between the local and remote copy of one
// note. Both full snapshots are captured at detection time. Once resolved the
// record is kept as an audit entry, never deleted by the engine.
type SyncConflict struct {
	ConflictID string `json:"conflict_id"`
	NoteID     string `json:"note_id"`

	// LocalNote and RemoteNote are the full record snapshots at detection time.
	LocalNote  Note `json:"local_note"`
	RemoteNote Note `json:"remote_note"`

	DetectedAt time.Time `json:"detected_at"`

	// Resolution is nil while the conflict is open.
	Resolution *ConflictResolutionStrategy `json:"resolution,omitempty"`
	ResolvedAt *time.Time                  `json:"resolved_at,omitempty"`

	// ResolvedNote is the record chosen as the outcome. Nil while open.
	ResolvedNote *Note `json:"resolved_note,omitempty"`
}

// Open reports whether the conflict still awaits a resolution.
func (c *SyncConflict) Open() bool {
	return c.ResolvedAt == nil
}

// SyncMetadata is the process-wide synchronization state, one instance per
// device. It is persisted independently of note data so status survives
// across sessions even if no sync ever completed.
type SyncMetadata struct {
	LastSyncAt       *time.Time `json:"last_sync_at,omitempty"`
	PendingSyncCount int        `json:"pending_sync_count"`
	ConflictCount    int        `json:"conflict_count"`
	SyncEnabled      bool       `json:"sync_enabled"`
}

// SyncError captures a failure that touched a single note during a pass.
// Per-note failures never abort sibling notes.
type SyncError struct {
	NoteID    string    `json:"note_id"`
	Operation string    `json:"operation"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SyncResult is the outcome of one complete sync pass.
//
// Success is false only for pass-level failures (lock contention, sync
// disabled, metadata write failure). Individual per-note errors leave
// Success true with a non-empty Errors slice.
type SyncResult struct {
	Success     bool           `json:"success"`
	Origin      SyncOrigin     `json:"origin"`
	SyncedNotes []Note         `json:"synced_notes,omitempty"`
	Conflicts   []SyncConflict `json:"conflicts,omitempty"`
	Errors      []SyncError    `json:"errors,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
}
