// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// syncMetadataKey is the fixed key the metadata repository stores the
// serialized [models.SyncMetadata] under.
const syncMetadataKey = "sync_metadata"

type clientSyncService struct {
	notes     store.NoteRepository
	conflicts store.ConflictRepository
	metadata  store.MetadataRepository
	remote    adapter.RemoteStore

	detector ConflictDetector
	resolver ConflictResolver
	strategy models.ConflictResolutionStrategy

	logger *logger.Logger
	now    func() time.Time

	syncing atomic.Bool
}

// NewClientSyncService wires the sync orchestrator. An invalid or empty
// strategy falls back to last-write-wins.
func NewClientSyncService(storages *store.ClientStorages, remote adapter.RemoteStore, strategy models.ConflictResolutionStrategy, logger *logger.Logger) ClientSyncService {
	if !strategy.Valid() {
		strategy = models.StrategyLastWriteWins
	}

	return &clientSyncService{
		notes:     storages.Notes,
		conflicts: storages.Conflicts,
		metadata:  storages.Metadata,
		remote:    remote,
		detector:  NewConflictDetector(),
		resolver:  NewConflictResolver(),
		strategy:  strategy,
		logger:    logger,
		now:       time.Now,
	}
}

// FullSync implements [ClientSyncService].
func (s *clientSyncService) FullSync(ctx context.Context, origin models.SyncOrigin) (models.SyncResult, error) {
	localNotes, err := s.notes.ListAll(ctx, true)
	if err != nil {
		return models.SyncResult{Origin: origin}, fmt.Errorf("%w: list local notes: %w", ErrStoreUnavailable, err)
	}
	return s.SyncNotes(ctx, localNotes, origin)
}

// SyncNotes implements [ClientSyncService]. It walks the union of note ids on
// both sides, reconciling each id independently; one misbehaving note never
// blocks its siblings. The pass lock is an in-memory CAS flag: contention
// fails fast with no writes rather than queueing behind a slow pass.
func (s *clientSyncService) SyncNotes(ctx context.Context, localNotes []models.Note, origin models.SyncOrigin) (models.SyncResult, error) {
	log := logger.FromContext(ctx)
	started := s.now()
	result := models.SyncResult{Origin: origin, StartedAt: started}

	if !s.syncing.CompareAndSwap(false, true) {
		result.FinishedAt = s.now()
		return result, ErrSyncInProgress
	}
	defer s.syncing.Store(false)

	meta, err := s.loadMetadata(ctx)
	if err != nil {
		result.FinishedAt = s.now()
		return result, err
	}
	if !meta.SyncEnabled {
		result.FinishedAt = s.now()
		return result, ErrSyncDisabled
	}

	remoteNotes, err := s.remote.ListAll(ctx)
	if err != nil {
		log.Err(err).
			Str("func", "clientSyncService.SyncNotes").
			Msg("remote listing failed, aborting pass")
		result.FinishedAt = s.now()
		return result, fmt.Errorf("list remote notes: %w", err)
	}

	localByID := make(map[string]models.Note, len(localNotes))
	for _, n := range localNotes {
		localByID[n.ID] = n
	}
	remoteByID := make(map[string]models.Note, len(remoteNotes))
	for _, n := range remoteNotes {
		remoteByID[n.ID] = n
	}

	for _, id := range unionIDs(localByID, remoteByID) {
		local, hasLocal := localByID[id]
		remote, hasRemote := remoteByID[id]

		switch {
		case hasLocal && !hasRemote:
			s.pushNew(ctx, local, started, &result)
		case !hasLocal && hasRemote:
			s.pull(ctx, remote, started, &result)
		default:
			s.reconcile(ctx, local, remote, started, &result)
		}
	}

	if err = s.finishPass(ctx, &meta, started); err != nil {
		result.FinishedAt = s.now()
		return result, err
	}

	result.Success = true
	result.FinishedAt = s.now()

	log.Info().
		Str("func", "clientSyncService.SyncNotes").
		Str("origin", string(origin)).
		Int("synced", len(result.SyncedNotes)).
		Int("conflicts", len(result.Conflicts)).
		Int("errors", len(result.Errors)).
		Msg("sync pass finished")

	return result, nil
}

// pushNew handles a note present only locally. A zero remoteVersion means it
// was never pushed; a non-zero one means the server lost the record (or a
// different account is in use), in which case the note is re-pushed as new.
func (s *clientSyncService) pushNew(ctx context.Context, local models.Note, syncTime time.Time, result *models.SyncResult) {
	local = s.markSyncing(ctx, local)

	stored, err := s.remote.Put(ctx, local, 0)
	if err != nil {
		s.failNote(ctx, result, local, "push", err)
		return
	}

	local.RemoteVersion = stored.RemoteVersion
	local.LastSyncedAt = &syncTime
	local.SyncStatus = models.SyncStatusSynced
	if err = s.notes.Put(ctx, local); err != nil {
		s.failNote(ctx, result, local, "save-local", err)
		return
	}

	result.SyncedNotes = append(result.SyncedNotes, local)
}

// pull handles a note present only remotely: it lands locally with the remote
// timestamps preserved and a zero localVersion, so it never counts as a
// pending local change.
func (s *clientSyncService) pull(ctx context.Context, remote models.Note, syncTime time.Time, result *models.SyncResult) {
	remote.LocalVersion = 0
	remote.LastSyncedAt = &syncTime
	remote.SyncStatus = models.SyncStatusSynced

	if err := s.notes.Put(ctx, remote); err != nil {
		s.recordError(ctx, result, remote.ID, "pull", err)
		return
	}

	result.SyncedNotes = append(result.SyncedNotes, remote)
}

// reconcile handles a note present on both sides. Tombstones travel through
// here like any other field change.
func (s *clientSyncService) reconcile(ctx context.Context, local, remote models.Note, syncTime time.Time, result *models.SyncResult) {
	conflict, conflicted := s.detector.Detect(local, remote)
	if !conflicted {
		s.propagate(ctx, local, remote, syncTime, result)
		return
	}

	// Never act on the pass-start snapshot: the user may have edited the
	// note while this pass was scanning its siblings.
	fresh, err := s.notes.Get(ctx, local.ID)
	if err != nil {
		s.failNote(ctx, result, local, "reread-local", err)
		return
	}
	if !fresh.UpdatedAt.Equal(local.UpdatedAt) {
		conflict, conflicted = s.detector.Detect(fresh, remote)
		if !conflicted {
			s.propagate(ctx, fresh, remote, syncTime, result)
			return
		}
	} else {
		conflict.LocalNote = fresh
	}

	outcome, err := s.resolver.Resolve(conflict, s.strategy, syncTime)
	if err != nil {
		s.failNote(ctx, result, fresh, "resolve", err)
		return
	}

	if !outcome.Resolved {
		s.leaveOpen(ctx, conflict, fresh, result)
		return
	}

	s.applyResolution(ctx, conflict, outcome, fresh, remote, syncTime, result)
}

// propagate pushes or pulls a one-sided change detected between local and
// remote. When neither side moved past the watermark there is nothing to do.
func (s *clientSyncService) propagate(ctx context.Context, local, remote models.Note, syncTime time.Time, result *models.SyncResult) {
	localChanged := local.ChangedSince(local.LastSyncedAt)
	remoteChanged := remote.ChangedSince(local.LastSyncedAt)

	switch {
	case localChanged:
		local = s.markSyncing(ctx, local)

		stored, err := s.remote.Put(ctx, local, remote.RemoteVersion)
		if err != nil {
			s.failNote(ctx, result, local, "push", err)
			return
		}
		local.RemoteVersion = stored.RemoteVersion
		local.LastSyncedAt = &syncTime
		local.SyncStatus = models.SyncStatusSynced
		if err = s.notes.Put(ctx, local); err != nil {
			s.failNote(ctx, result, local, "save-local", err)
			return
		}
		result.SyncedNotes = append(result.SyncedNotes, local)

	case remoteChanged:
		merged := remote
		merged.LocalVersion = local.LocalVersion
		merged.LastSyncedAt = &syncTime
		merged.SyncStatus = models.SyncStatusSynced
		if err := s.notes.Put(ctx, merged); err != nil {
			s.failNote(ctx, result, local, "pull", err)
			return
		}
		result.SyncedNotes = append(result.SyncedNotes, merged)

	default:
		// Both sides sit at the watermark; the copies are in agreement.
	}
}

// leaveOpen persists an unresolved conflict and flags the local note so the
// UI can surface it. The note's content is untouched.
func (s *clientSyncService) leaveOpen(ctx context.Context, conflict models.SyncConflict, local models.Note, result *models.SyncResult) {
	if err := s.conflicts.SaveConflict(ctx, conflict); err != nil {
		s.failNote(ctx, result, local, "save-conflict", err)
		return
	}

	local.SyncStatus = models.SyncStatusConflict
	if err := s.notes.Put(ctx, local); err != nil {
		s.failNote(ctx, result, local, "flag-conflict", err)
		return
	}

	result.Conflicts = append(result.Conflicts, conflict)
}

// applyResolution writes an automatically resolved winner to both stores and
// records the closed conflict as an audit entry.
func (s *clientSyncService) applyResolution(ctx context.Context, conflict models.SyncConflict, outcome ResolutionOutcome, local, remote models.Note, syncTime time.Time, result *models.SyncResult) {
	log := logger.FromContext(ctx)

	winner := outcome.Winner
	stored, err := s.remote.Put(ctx, winner, remote.RemoteVersion)
	if err != nil {
		s.failNote(ctx, result, local, "push-resolved", err)
		return
	}

	winner.RemoteVersion = stored.RemoteVersion
	winner.LocalVersion = local.LocalVersion + 1
	if err = s.notes.Put(ctx, winner); err != nil {
		s.failNote(ctx, result, local, "save-resolved", err)
		return
	}

	resolvedAt := s.now()
	strategy := s.strategy
	conflict.Resolution = &strategy
	conflict.ResolvedAt = &resolvedAt
	conflict.ResolvedNote = &winner
	if err = s.conflicts.SaveConflict(ctx, conflict); err != nil {
		// The data is consistent on both stores; only the audit entry is
		// missing. Worth a log line, not a per-note failure.
		log.Warn().Err(err).
			Str("func", "clientSyncService.applyResolution").
			Str("conflict_id", conflict.ConflictID).
			Msg("failed to save resolution audit record")
	}

	log.Info().
		Str("func", "clientSyncService.applyResolution").
		Str("note_id", conflict.NoteID).
		Str("strategy", string(s.strategy)).
		Str("winner", string(outcome.WinnerOrigin)).
		Msg("conflict resolved automatically")

	result.SyncedNotes = append(result.SyncedNotes, winner)
	result.Conflicts = append(result.Conflicts, conflict)
}

// finishPass recomputes the bookkeeping counters and advances the pass
// watermark. A metadata write failure is a pass-level failure: the pass's
// effects are durable but unaccounted, and the caller must know.
func (s *clientSyncService) finishPass(ctx context.Context, meta *models.SyncMetadata, started time.Time) error {
	all, err := s.notes.ListAll(ctx, true)
	if err != nil {
		return fmt.Errorf("%w: recount pending notes: %w", ErrStoreUnavailable, err)
	}
	pending := 0
	for _, n := range all {
		if n.LocalVersion > n.RemoteVersion {
			pending++
		}
	}

	open, err := s.conflicts.ListOpenConflicts(ctx)
	if err != nil {
		return fmt.Errorf("%w: recount open conflicts: %w", ErrStoreUnavailable, err)
	}

	meta.LastSyncAt = &started
	meta.PendingSyncCount = pending
	meta.ConflictCount = len(open)

	if err = s.saveMetadata(ctx, *meta); err != nil {
		return err
	}

	return nil
}

// ResolveConflictManually implements [ClientSyncService].
func (s *clientSyncService) ResolveConflictManually(ctx context.Context, conflictID string, chosen models.Note) (models.SyncConflict, error) {
	log := logger.FromContext(ctx)

	conflict, err := s.conflicts.GetConflict(ctx, conflictID)
	if err != nil {
		if errors.Is(err, store.ErrConflictNotFound) {
			return models.SyncConflict{}, ErrConflictNotFound
		}
		return models.SyncConflict{}, fmt.Errorf("%w: load conflict: %w", ErrStoreUnavailable, err)
	}
	if !conflict.Open() {
		return models.SyncConflict{}, ErrAlreadyResolved
	}
	if chosen.ID != conflict.NoteID {
		return models.SyncConflict{}, fmt.Errorf("%w: chosen note %q does not belong to conflict %q", ErrValidation, chosen.ID, conflictID)
	}

	now := s.now()

	stored, err := s.remote.Put(ctx, chosen, conflict.RemoteNote.RemoteVersion)
	if err != nil {
		return models.SyncConflict{}, fmt.Errorf("push chosen record: %w", err)
	}

	localVersion := conflict.LocalNote.LocalVersion
	if fresh, getErr := s.notes.Get(ctx, conflict.NoteID); getErr == nil {
		localVersion = fresh.LocalVersion
	}

	chosen.LocalVersion = localVersion + 1
	chosen.RemoteVersion = stored.RemoteVersion
	chosen.LastSyncedAt = &now
	chosen.SyncStatus = models.SyncStatusSynced
	if err = s.notes.Put(ctx, chosen); err != nil {
		return models.SyncConflict{}, fmt.Errorf("%w: save chosen record: %w", ErrStoreUnavailable, err)
	}

	strategy := models.StrategyManual
	conflict.Resolution = &strategy
	conflict.ResolvedAt = &now
	conflict.ResolvedNote = &chosen
	if err = s.conflicts.UpdateConflict(ctx, conflict); err != nil {
		return models.SyncConflict{}, fmt.Errorf("%w: close conflict: %w", ErrStoreUnavailable, err)
	}

	if err = s.refreshConflictCount(ctx); err != nil {
		log.Warn().Err(err).
			Str("func", "clientSyncService.ResolveConflictManually").
			Msg("failed to refresh conflict count")
	}

	log.Info().
		Str("func", "clientSyncService.ResolveConflictManually").
		Str("conflict_id", conflictID).
		Str("note_id", conflict.NoteID).
		Msg("conflict resolved manually")

	return conflict, nil
}

// ListOpenConflicts implements [ClientSyncService].
func (s *clientSyncService) ListOpenConflicts(ctx context.Context) ([]models.SyncConflict, error) {
	open, err := s.conflicts.ListOpenConflicts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list open conflicts: %w", ErrStoreUnavailable, err)
	}
	return open, nil
}

// GetSyncMetadata implements [ClientSyncService].
func (s *clientSyncService) GetSyncMetadata(ctx context.Context) (models.SyncMetadata, error) {
	return s.loadMetadata(ctx)
}

// SetSyncEnabled implements [ClientSyncService].
func (s *clientSyncService) SetSyncEnabled(ctx context.Context, enabled bool) error {
	meta, err := s.loadMetadata(ctx)
	if err != nil {
		return err
	}

	meta.SyncEnabled = enabled
	return s.saveMetadata(ctx, meta)
}

// PurgeDeleted implements [ClientSyncService].
func (s *clientSyncService) PurgeDeleted(ctx context.Context, olderThan time.Duration) (int, error) {
	log := logger.FromContext(ctx)

	all, err := s.notes.ListAll(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("%w: list notes: %w", ErrStoreUnavailable, err)
	}

	cutoff := s.now().Add(-olderThan)
	purged := 0
	for _, n := range all {
		if !n.Deleted() || n.DeletedAt.After(cutoff) {
			continue
		}
		if err := s.notes.Delete(ctx, n.ID); err != nil {
			log.Warn().Err(err).
				Str("func", "clientSyncService.PurgeDeleted").
				Str("note_id", n.ID).
				Msg("failed to purge tombstoned note")
			continue
		}
		purged++
	}

	return purged, nil
}

// markSyncing persists the in-flight status on a record about to be pushed,
// so an interrupted pass leaves visible state. Losing the flag is harmless:
// the next pass re-derives everything from versions and watermarks.
func (s *clientSyncService) markSyncing(ctx context.Context, local models.Note) models.Note {
	local.SyncStatus = models.SyncStatusSyncing
	if err := s.notes.Put(ctx, local); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "clientSyncService.markSyncing").
			Str("note_id", local.ID).
			Msg("failed to flag note as syncing")
	}
	return local
}

// failNote records a per-note failure and flags the local record so the
// failure survives the pass. The flag write is best effort: the store that
// just refused a write may refuse this one too.
func (s *clientSyncService) failNote(ctx context.Context, result *models.SyncResult, local models.Note, operation string, err error) {
	s.recordError(ctx, result, local.ID, operation, err)

	local.SyncStatus = models.SyncStatusError
	if putErr := s.notes.Put(ctx, local); putErr != nil {
		logger.FromContext(ctx).Warn().Err(putErr).
			Str("func", "clientSyncService.failNote").
			Str("note_id", local.ID).
			Msg("failed to flag note as errored")
	}
}

func (s *clientSyncService) recordError(ctx context.Context, result *models.SyncResult, noteID, operation string, err error) {
	logger.FromContext(ctx).Warn().Err(err).
		Str("func", "clientSyncService.SyncNotes").
		Str("note_id", noteID).
		Str("operation", operation).
		Msg("per-note sync failure")

	result.Errors = append(result.Errors, models.SyncError{
		NoteID:    noteID,
		Operation: operation,
		Message:   err.Error(),
		Timestamp: s.now(),
	})
}

func (s *clientSyncService) refreshConflictCount(ctx context.Context) error {
	meta, err := s.loadMetadata(ctx)
	if err != nil {
		return err
	}

	open, err := s.conflicts.ListOpenConflicts(ctx)
	if err != nil {
		return fmt.Errorf("%w: list open conflicts: %w", ErrStoreUnavailable, err)
	}

	meta.ConflictCount = len(open)
	return s.saveMetadata(ctx, meta)
}

// loadMetadata returns the persisted metadata, or the zero state with sync
// enabled when nothing was persisted yet.
func (s *clientSyncService) loadMetadata(ctx context.Context) (models.SyncMetadata, error) {
	raw, err := s.metadata.GetMetadata(ctx, syncMetadataKey)
	if err != nil {
		if errors.Is(err, store.ErrMetadataNotFound) {
			return models.SyncMetadata{SyncEnabled: true}, nil
		}
		return models.SyncMetadata{}, fmt.Errorf("%w: load sync metadata: %w", ErrStoreUnavailable, err)
	}

	var meta models.SyncMetadata
	if err = json.Unmarshal(raw, &meta); err != nil {
		return models.SyncMetadata{}, fmt.Errorf("decode sync metadata: %w", err)
	}

	return meta, nil
}

func (s *clientSyncService) saveMetadata(ctx context.Context, meta models.SyncMetadata) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode sync metadata: %w", err)
	}
	if err = s.metadata.PutMetadata(ctx, syncMetadataKey, raw); err != nil {
		return fmt.Errorf("%w: save sync metadata: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func unionIDs(local, remote map[string]models.Note) []string {
	seen := make(map[string]struct{}, len(local)+len(remote))
	for id := range local {
		seen[id] = struct{}{}
	}
	for id := range remote {
		seen[id] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
