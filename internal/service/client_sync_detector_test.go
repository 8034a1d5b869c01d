// SPDX-License-Identifier: Apache-2.0

package service

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var detectorBase = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func syncedNote(id string, updatedAt time.Time, lastSyncedAt *time.Time) models.Note {
	return models.Note{
		ID:           id,
		Title:        "note " + id,
		Content:      "content",
		CreatedAt:    detectorBase.Add(-time.Hour),
		UpdatedAt:    updatedAt,
		LastSyncedAt: lastSyncedAt,
		SyncStatus:   models.SyncStatusSynced,
	}
}

func TestConflictDetector_OneSidedLocalChange_NoConflict(t *testing.T) {
	d := NewConflictDetector()

	watermark := detectorBase
	local := syncedNote("note-1", watermark.Add(10*time.Minute), &watermark)
	remote := syncedNote("note-1", watermark, &watermark)

	_, conflicted := d.Detect(local, remote)
	assert.False(t, conflicted, "a change on one side only is ordinary propagation")
}

func TestConflictDetector_OneSidedRemoteChange_NoConflict(t *testing.T) {
	d := NewConflictDetector()

	watermark := detectorBase
	local := syncedNote("note-1", watermark, &watermark)
	remote := syncedNote("note-1", watermark.Add(10*time.Minute), &watermark)

	_, conflicted := d.Detect(local, remote)
	assert.False(t, conflicted)
}

func TestConflictDetector_NeitherChanged_NoConflict(t *testing.T) {
	d := NewConflictDetector()

	watermark := detectorBase
	local := syncedNote("note-1", watermark, &watermark)
	remote := syncedNote("note-1", watermark, &watermark)

	_, conflicted := d.Detect(local, remote)
	assert.False(t, conflicted)
}

func TestConflictDetector_BothChanged_Conflict(t *testing.T) {
	d := NewConflictDetector()

	watermark := detectorBase
	local := syncedNote("note-1", watermark.Add(5*time.Minute), &watermark)
	remote := syncedNote("note-1", watermark.Add(7*time.Minute), &watermark)

	conflict, conflicted := d.Detect(local, remote)
	require.True(t, conflicted)

	assert.NotEmpty(t, conflict.ConflictID)
	assert.Equal(t, "note-1", conflict.NoteID)
	assert.Equal(t, local, conflict.LocalNote, "conflict must carry the full local snapshot")
	assert.Equal(t, remote, conflict.RemoteNote, "conflict must carry the full remote snapshot")
	assert.False(t, conflict.DetectedAt.IsZero())
	assert.True(t, conflict.Open())
}

func TestConflictDetector_NilWatermark_TreatedAsEpoch(t *testing.T) {
	d := NewConflictDetector()

	// Never synced: any timestamp on both sides counts as a change.
	local := syncedNote("note-1", detectorBase, nil)
	remote := syncedNote("note-1", detectorBase.Add(time.Minute), nil)

	_, conflicted := d.Detect(local, remote)
	assert.True(t, conflicted)
}

func TestConflictDetector_EqualTimestamps_StillConflict(t *testing.T) {
	d := NewConflictDetector()

	// Both sides landed on the exact same updatedAt past the watermark.
	// Equal timestamps never imply equal content.
	watermark := detectorBase
	updated := watermark.Add(time.Minute)
	local := syncedNote("note-1", updated, &watermark)
	remote := syncedNote("note-1", updated, &watermark)

	_, conflicted := d.Detect(local, remote)
	assert.True(t, conflicted)
}

func TestConflictDetector_TombstoneVsEdit_Conflict(t *testing.T) {
	d := NewConflictDetector()

	watermark := detectorBase
	deletedAt := watermark.Add(2 * time.Minute)

	local := syncedNote("note-1", deletedAt, &watermark)
	local.DeletedAt = &deletedAt

	remote := syncedNote("note-1", watermark.Add(3*time.Minute), &watermark)

	conflict, conflicted := d.Detect(local, remote)
	require.True(t, conflicted, "a deletion races an edit like any other field change")
	assert.True(t, conflict.LocalNote.Deleted())
}

func TestConflictDetector_FreshIDs(t *testing.T) {
	d := NewConflictDetector()

	watermark := detectorBase
	local := syncedNote("note-1", watermark.Add(time.Minute), &watermark)
	remote := syncedNote("note-1", watermark.Add(2*time.Minute), &watermark)

	first, ok := d.Detect(local, remote)
	require.True(t, ok)
	second, ok := d.Detect(local, remote)
	require.True(t, ok)

	assert.NotEqual(t, first.ConflictID, second.ConflictID)
}
