package store

import (
	"database/sql"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/migrations"
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. The Postgres implementation inspects driver error codes; SQLite
// connections leave it nil and treat every failure as final.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// MigrateClient applies the on-device SQLite schema.
func (db *DB) MigrateClient() error {
	return migrations.MigrateClient(db.DB)
}

// MigrateServer applies the remote-side Postgres schema.
func (db *DB) MigrateServer() error {
	return migrations.MigrateServer(db.DB)
}
