// SPDX-License-Identifier: Apache-2.0

package service

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConflict(localUpdated, remoteUpdated time.Time) models.SyncConflict {
	watermark := detectorBase
	local := syncedNote("note-1", localUpdated, &watermark)
	local.Content = "local content"
	remote := syncedNote("note-1", remoteUpdated, &watermark)
	remote.Content = "remote content"

	return models.SyncConflict{
		ConflictID: "conflict-1",
		NoteID:     "note-1",
		LocalNote:  local,
		RemoteNote: remote,
		DetectedAt: detectorBase.Add(10 * time.Minute),
	}
}

func TestConflictResolver_LastWriteWins_RemoteNewer(t *testing.T) {
	r := NewConflictResolver()
	conflict := newTestConflict(detectorBase.Add(time.Minute), detectorBase.Add(2*time.Minute))
	syncTime := detectorBase.Add(15 * time.Minute)

	outcome, err := r.Resolve(conflict, models.StrategyLastWriteWins, syncTime)
	require.NoError(t, err)
	require.True(t, outcome.Resolved)

	assert.Equal(t, models.OriginRemote, outcome.WinnerOrigin)
	assert.Equal(t, "remote content", outcome.Winner.Content)
	require.NotNil(t, outcome.Winner.LastSyncedAt)
	assert.Equal(t, syncTime, *outcome.Winner.LastSyncedAt)
	assert.Equal(t, models.SyncStatusSynced, outcome.Winner.SyncStatus)
}

func TestConflictResolver_LastWriteWins_LocalNewer(t *testing.T) {
	r := NewConflictResolver()
	conflict := newTestConflict(detectorBase.Add(3*time.Minute), detectorBase.Add(2*time.Minute))

	outcome, err := r.Resolve(conflict, models.StrategyLastWriteWins, detectorBase.Add(15*time.Minute))
	require.NoError(t, err)
	require.True(t, outcome.Resolved)

	assert.Equal(t, models.OriginLocal, outcome.WinnerOrigin)
	assert.Equal(t, "local content", outcome.Winner.Content)
}

func TestConflictResolver_LastWriteWins_TieGoesToLocal(t *testing.T) {
	r := NewConflictResolver()
	same := detectorBase.Add(time.Minute)
	conflict := newTestConflict(same, same)

	outcome, err := r.Resolve(conflict, models.StrategyLastWriteWins, detectorBase.Add(15*time.Minute))
	require.NoError(t, err)
	require.True(t, outcome.Resolved)

	assert.Equal(t, models.OriginLocal, outcome.WinnerOrigin)
	assert.Equal(t, "local content", outcome.Winner.Content)
}

func TestConflictResolver_LastWriteWins_Idempotent(t *testing.T) {
	r := NewConflictResolver()
	conflict := newTestConflict(detectorBase.Add(time.Minute), detectorBase.Add(2*time.Minute))
	syncTime := detectorBase.Add(15 * time.Minute)

	first, err := r.Resolve(conflict, models.StrategyLastWriteWins, syncTime)
	require.NoError(t, err)

	second, err := r.Resolve(conflict, models.StrategyLastWriteWins, syncTime)
	require.NoError(t, err)

	// Resolving the same divergence again picks the same winner, unchanged.
	assert.Equal(t, first, second)
	assert.Equal(t, first.Winner, second.Winner)
}

func TestConflictResolver_LocalPriority(t *testing.T) {
	r := NewConflictResolver()
	// Remote is newer, local still wins.
	conflict := newTestConflict(detectorBase.Add(time.Minute), detectorBase.Add(time.Hour))

	outcome, err := r.Resolve(conflict, models.StrategyLocalPriority, detectorBase.Add(2*time.Hour))
	require.NoError(t, err)
	require.True(t, outcome.Resolved)

	assert.Equal(t, models.OriginLocal, outcome.WinnerOrigin)
	assert.Equal(t, "local content", outcome.Winner.Content)
}

func TestConflictResolver_RemotePriority(t *testing.T) {
	r := NewConflictResolver()
	// Local is newer, remote still wins.
	conflict := newTestConflict(detectorBase.Add(time.Hour), detectorBase.Add(time.Minute))

	outcome, err := r.Resolve(conflict, models.StrategyRemotePriority, detectorBase.Add(2*time.Hour))
	require.NoError(t, err)
	require.True(t, outcome.Resolved)

	assert.Equal(t, models.OriginRemote, outcome.WinnerOrigin)
	assert.Equal(t, "remote content", outcome.Winner.Content)
}

func TestConflictResolver_Manual_LeavesUnresolved(t *testing.T) {
	r := NewConflictResolver()
	conflict := newTestConflict(detectorBase.Add(time.Minute), detectorBase.Add(2*time.Minute))

	outcome, err := r.Resolve(conflict, models.StrategyManual, detectorBase.Add(15*time.Minute))
	require.NoError(t, err)

	assert.False(t, outcome.Resolved)
	assert.Empty(t, outcome.Winner.ID)
}

func TestConflictResolver_UnknownStrategy(t *testing.T) {
	r := NewConflictResolver()
	conflict := newTestConflict(detectorBase.Add(time.Minute), detectorBase.Add(2*time.Minute))

	_, err := r.Resolve(conflict, models.ConflictResolutionStrategy("merge"), detectorBase)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConflictResolver_WholeRecordWins(t *testing.T) {
	r := NewConflictResolver()
	conflict := newTestConflict(detectorBase.Add(time.Minute), detectorBase.Add(2*time.Minute))
	conflict.LocalNote.Tags = []string{"local-tag"}
	conflict.RemoteNote.Tags = []string{"remote-tag"}

	outcome, err := r.Resolve(conflict, models.StrategyLastWriteWins, detectorBase.Add(15*time.Minute))
	require.NoError(t, err)

	// No field-level merge: the losing record is discarded whole.
	assert.Equal(t, []string{"remote-tag"}, outcome.Winner.Tags)
	assert.Equal(t, "remote content", outcome.Winner.Content)
}
