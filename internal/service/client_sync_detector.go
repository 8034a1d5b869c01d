// SPDX-License-Identifier: Apache-2.0

package service

import (
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// conflictDetector implements the watermark comparison at the heart of the
// sync engine. The local record's lastSyncedAt is the shared reference point:
// a side "changed" when its updatedAt moved past that watermark. Divergence
// is a conflict only when both sides moved; one-sided movement is ordinary
// propagation and never reported here.
type conflictDetector struct {
	uuid *utils.UUIDGenerator
	now  func() time.Time
}

func NewConflictDetector() ConflictDetector {
	return &conflictDetector{
		uuid: utils.NewUUIDGenerator(),
		now:  time.Now,
	}
}

// Detect implements [ConflictDetector]. A nil watermark counts as the epoch,
// so a note that exists on both sides but was never synced conflicts as soon
// as either side carries any timestamp. Two sides that both changed and
// landed on the exact same updatedAt still conflict: the engine never
// assumes equal timestamps mean equal content.
func (d *conflictDetector) Detect(local, remote models.Note) (models.SyncConflict, bool) {
	localChanged := local.ChangedSince(local.LastSyncedAt)
	remoteChanged := remote.ChangedSince(local.LastSyncedAt)

	if !localChanged || !remoteChanged {
		return models.SyncConflict{}, false
	}

	return models.SyncConflict{
		ConflictID: d.uuid.Generate(),
		NoteID:     local.ID,
		LocalNote:  local,
		RemoteNote: remote,
		DetectedAt: d.now(),
	}, true
}
