// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/service"
)

// syncWorker adapts [service.ClientSyncJob] to the [Worker] lifecycle.
type syncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
	ctx      context.Context
}

// NewSyncWorker wraps the periodic sync job as a worker. The job syncs every
// interval until ctx is cancelled or Stop is called.
func NewSyncWorker(ctx context.Context, job service.ClientSyncJob, interval time.Duration) Worker {
	return &syncWorker{job: job, interval: interval, ctx: ctx}
}

// Run implements [Worker].
func (w *syncWorker) Run() {
	w.job.Start(w.ctx, w.interval)
}

// Stop implements [Worker].
func (w *syncWorker) Stop() {
	w.job.Stop()
}
