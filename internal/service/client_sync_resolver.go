// SPDX-License-Identifier: Apache-2.0

package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
)

// conflictResolver applies the pass strategy to a detected conflict. It is
// pure: the orchestrator is responsible for writing the winner to the stores
// and for version bookkeeping.
type conflictResolver struct {
}

func NewConflictResolver() ConflictResolver {
	return &conflictResolver{}
}

// Resolve implements [ConflictResolver]. The losing record is discarded
// whole; automatic winners leave the resolver stamped with
// lastSyncedAt = syncTime and status synced. The manual strategy picks no
// winner: the conflict stays open for [ClientSyncService.ResolveConflictManually].
func (r *conflictResolver) Resolve(conflict models.SyncConflict, strategy models.ConflictResolutionStrategy, syncTime time.Time) (ResolutionOutcome, error) {
	var winner models.Note
	var origin models.SyncOrigin

	switch strategy {
	case models.StrategyLastWriteWins:
		// Ties go to the local side: the record the user can see wins over
		// one they cannot.
		if conflict.RemoteNote.UpdatedAt.After(conflict.LocalNote.UpdatedAt) {
			winner, origin = conflict.RemoteNote, models.OriginRemote
		} else {
			winner, origin = conflict.LocalNote, models.OriginLocal
		}
	case models.StrategyLocalPriority:
		winner, origin = conflict.LocalNote, models.OriginLocal
	case models.StrategyRemotePriority:
		winner, origin = conflict.RemoteNote, models.OriginRemote
	case models.StrategyManual:
		return ResolutionOutcome{Resolved: false}, nil
	default:
		return ResolutionOutcome{}, fmt.Errorf("%w: unknown resolution strategy %q", ErrValidation, strategy)
	}

	winner.LastSyncedAt = &syncTime
	winner.SyncStatus = models.SyncStatusSynced

	return ResolutionOutcome{
		Resolved:     true,
		Winner:       winner,
		WinnerOrigin: origin,
	}, nil
}
