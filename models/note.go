// SPDX-License-Identifier: Apache-2.0

package models

import (
	"strings"
	"time"
)

// SyncStatus describes where a note stands relative to the remote copy.
type SyncStatus string

const (
	// SyncStatusSynced means the note is confirmed identical on both stores.
	SyncStatusSynced SyncStatus = "synced"

	// SyncStatusSyncing means a sync pass is currently processing the note.
	SyncStatusSyncing SyncStatus = "syncing"

	// SyncStatusConflict means the note has an open conflict awaiting manual
	// resolution.
	SyncStatusConflict SyncStatus = "conflict"

	// SyncStatusError means the last sync pass failed for this specific note.
	SyncStatusError SyncStatus = "error"

	// SyncStatusPending means the note has local changes not yet pushed.
	SyncStatusPending SyncStatus = "pending"
)

// Note is the unit of synchronization. Content may be plaintext or ciphertext
// produced by the crypto service; the sync engine never inspects it and
// compares timestamps and versions only.
type Note struct {
	// ID is a globally unique identifier, immutable after creation.
	ID string `json:"id"`

	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt is the soft-delete tombstone. A non-nil value means the note
	// is logically gone but retained for the retention window so it can be
	// restored and so concurrent edits are detected as conflicts.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// WordCount is derived from Content on every Touch. It is informational
	// and never participates in conflict detection.
	WordCount int `json:"word_count"`

	// LocalVersion is incremented on every local mutation.
	LocalVersion int64 `json:"local_version"`

	// RemoteVersion is incremented on every successful push to the remote
	// store. Zero means the note has never been pushed.
	RemoteVersion int64 `json:"remote_version"`

	// LastSyncedAt is the watermark: the last time this note was confirmed
	// identical on both stores. Nil means never synced.
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`

	SyncStatus SyncStatus `json:"sync_status"`
}

// Touch records a local mutation: it bumps UpdatedAt to now (never moving it
// backwards), increments LocalVersion, recomputes WordCount and marks the
// note pending. Every edit of Title, Content, Tags or DeletedAt must go
// through Touch to keep the detector's timestamp comparison sound.
func (n *Note) Touch(now time.Time) {
	if now.After(n.UpdatedAt) {
		n.UpdatedAt = now
	}
	n.LocalVersion++
	n.WordCount = countWords(n.Content)
	n.SyncStatus = SyncStatusPending
}

// Deleted reports whether the note carries a soft-delete tombstone.
func (n *Note) Deleted() bool {
	return n.DeletedAt != nil
}

// ChangedSince reports whether the note was modified after the given
// watermark. A nil watermark is treated as the epoch, so any UpdatedAt later
// than the zero time counts as changed.
func (n *Note) ChangedSince(watermark *time.Time) bool {
	since := time.Time{}
	if watermark != nil {
		since = *watermark
	}
	return n.UpdatedAt.After(since)
}

func countWords(content string) int {
	return len(strings.Fields(content))
}
