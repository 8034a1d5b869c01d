// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spySyncService counts FullSync calls.
type spySyncService struct {
	calls atomic.Int64
	err   error
}

func (s *spySyncService) FullSync(context.Context, models.SyncOrigin) (models.SyncResult, error) {
	s.calls.Add(1)
	return models.SyncResult{Success: s.err == nil}, s.err
}

func (s *spySyncService) SyncNotes(context.Context, []models.Note, models.SyncOrigin) (models.SyncResult, error) {
	return models.SyncResult{}, nil
}

func (s *spySyncService) ResolveConflictManually(context.Context, string, models.Note) (models.SyncConflict, error) {
	return models.SyncConflict{}, nil
}

func (s *spySyncService) ListOpenConflicts(context.Context) ([]models.SyncConflict, error) {
	return nil, nil
}

func (s *spySyncService) GetSyncMetadata(context.Context) (models.SyncMetadata, error) {
	return models.SyncMetadata{SyncEnabled: true}, nil
}

func (s *spySyncService) SetSyncEnabled(context.Context, bool) error { return nil }

func (s *spySyncService) PurgeDeleted(context.Context, time.Duration) (int, error) { return 0, nil }

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestClientSyncJob_Start_RunsPeriodicPasses(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)
	require.NotNil(t, job)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "expected multiple ticks, got %d", got)
}

func TestClientSyncJob_Stop_HaltsGoroutine(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no new passes after Stop")
}

func TestClientSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewClientSyncJob(&spySyncService{})
	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewClientSyncJob(&spySyncService{})
	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()
	assert.NotPanics(t, func() { job.Stop() })
}

func TestClientSyncJob_NonPositiveInterval_DefaultsTo5Minutes(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)

	job.Start(context.Background(), 0)
	time.Sleep(20 * time.Millisecond)
	job.Stop()

	assert.Equal(t, int64(0), spy.calls.Load(), "default 5min interval never fires within 20ms")
}

func TestClientSyncJob_Restart_KeepsTicking(t *testing.T) {
	spy := &spySyncService{}
	job := NewClientSyncJob(spy)
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	// A second Start stops the previous goroutine first.
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

func TestClientSyncJob_ContextCancel_StopReturns(t *testing.T) {
	job := NewClientSyncJob(&spySyncService{})
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}

func TestClientSyncJob_PassErrors_DoNotStopJob(t *testing.T) {
	spy := &spySyncService{err: assert.AnError}
	job := NewClientSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "failed passes must not kill the ticker, got %d", got)
}
