package service

import (
	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

type ClientServices struct {
	NoteService ClientNoteService
	SyncService ClientSyncService
	SyncJob     ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, remote adapter.RemoteStore, cfg config.ClientSync, logger *logger.Logger) *ClientServices {
	syncSvc := NewClientSyncService(storages, remote, models.ConflictResolutionStrategy(cfg.Strategy), logger)

	return &ClientServices{
		NoteService: NewClientNoteService(storages.Notes, logger),
		SyncService: syncSvc,
		SyncJob:     NewClientSyncJob(syncSvc),
	}
}
