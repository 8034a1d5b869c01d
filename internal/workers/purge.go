// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
)

// purgeWorker periodically hard-deletes tombstoned notes that outlived the
// retention window. Purged notes can no longer be restored, so the worker
// runs far less often than the sync job.
type purgeWorker struct {
	syncService service.ClientSyncService
	retention   time.Duration
	interval    time.Duration
	logger      *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPurgeWorker creates a purge worker. A non-positive retention defaults to
// 30 days; a non-positive interval to once an hour.
func NewPurgeWorker(ctx context.Context, syncService service.ClientSyncService, retention, interval time.Duration, logger *logger.Logger) Worker {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	if interval <= 0 {
		interval = time.Hour
	}

	return &purgeWorker{
		syncService: syncService,
		retention:   retention,
		interval:    interval,
		logger:      logger,
		ctx:         ctx,
	}
}

// Run implements [Worker].
func (w *purgeWorker) Run() {
	ctx, cancel := context.WithCancel(w.ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				purged, err := w.syncService.PurgeDeleted(ctx, w.retention)
				if err != nil {
					w.logger.Warn().Err(err).
						Str("func", "purgeWorker.Run").
						Msg("purge pass failed")
					continue
				}
				if purged > 0 {
					w.logger.Info().
						Str("func", "purgeWorker.Run").
						Int("purged", purged).
						Msg("purged tombstoned notes")
				}
			}
		}
	}()
}

// Stop implements [Worker]. Safe to call when the worker never ran.
func (w *purgeWorker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
}
