package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/workers"
	"github.com/MKhiriev/go-note-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("note-keeper-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote adapter")
	}

	if err = authenticate(context.Background(), remote, cfg.Adapter); err != nil {
		log.Fatal().Err(err).Msg("authenticate against remote server")
	}

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewClientServices(localStorage, remote, cfg.Sync, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	background := workers.NewWorkers(
		workers.NewSyncWorker(ctx, services.SyncJob, cfg.Sync.Interval),
		workers.NewPurgeWorker(ctx, services.SyncService, cfg.Sync.Retention, 0, log),
	)
	background.Run()

	log.Info().Msg("client started")

	<-ctx.Done()

	log.Info().Msg("shutting down")
	background.Stop()
}

// authenticate logs the configured account in, registering it first when the
// server does not know it yet. The adapter stores the issued token itself.
func authenticate(ctx context.Context, remote adapter.RemoteStore, cfg config.ClientAdapter) error {
	user := models.User{Login: cfg.Login, Password: cfg.Password}

	_, err := remote.Login(ctx, user)
	if err == nil {
		return nil
	}
	if !errors.Is(err, adapter.ErrUnauthorized) {
		return fmt.Errorf("login: %w", err)
	}

	if _, err = remote.Register(ctx, user); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
