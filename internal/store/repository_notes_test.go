package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestServerNoteRepo(t *testing.T) (*serverNoteRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &serverNoteRepository{
		DB:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func serverNoteColumns() []string {
	return []string{
		"id", "title", "content", "tags", "created_at", "updated_at",
		"deleted_at", "word_count", "remote_version",
	}
}

func TestServerGetNote_Success(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(serverNoteColumns()).
		AddRow("note-1", "groceries", "milk", `["home"]`, now, now, nil, 1, int64(3))

	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(int64(7), "note-1").
		WillReturnRows(rows)

	note, err := repo.GetNote(context.Background(), 7, "note-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.RemoteVersion != 3 {
		t.Errorf("expected remote version 3, got %d", note.RemoteVersion)
	}
}

func TestServerGetNote_NotFound(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(int64(7), "missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetNote(context.Background(), 7, "missing")
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestServerPutNote_FirstPushInserts(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	now := time.Now()
	note := models.Note{ID: "note-1", Title: "groceries", CreatedAt: now, UpdatedAt: now, WordCount: 1}

	mock.ExpectExec("INSERT INTO notes").
		WithArgs("note-1", int64(7), note.Title, note.Content, "[]",
			note.CreatedAt, note.UpdatedAt, nil, note.WordCount).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows := sqlmock.NewRows(serverNoteColumns()).
		AddRow("note-1", note.Title, note.Content, `[]`, now, now, nil, 1, int64(1))
	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(int64(7), "note-1").
		WillReturnRows(rows)

	stored, err := repo.PutNote(context.Background(), 7, note, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.RemoteVersion != 1 {
		t.Errorf("expected remote version 1 on first push, got %d", stored.RemoteVersion)
	}
}

func TestServerPutNote_FirstPushRace(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO notes").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.PutNote(context.Background(), 7, models.Note{ID: "note-1"}, 0)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestServerPutNote_UpdateBumpsVersion(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	now := time.Now()
	note := models.Note{ID: "note-1", Title: "edited", UpdatedAt: now, WordCount: 1}

	mock.ExpectExec("UPDATE notes").
		WithArgs(int64(7), "note-1", note.Title, note.Content, "[]",
			note.UpdatedAt, nil, note.WordCount, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows := sqlmock.NewRows(serverNoteColumns()).
		AddRow("note-1", note.Title, note.Content, `[]`, now, now, nil, 1, int64(3))
	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(int64(7), "note-1").
		WillReturnRows(rows)

	stored, err := repo.PutNote(context.Background(), 7, note, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.RemoteVersion != 3 {
		t.Errorf("expected remote version 3 after update, got %d", stored.RemoteVersion)
	}
}

func TestServerPutNote_StaleVersion(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectExec("UPDATE notes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// the note exists, so zero affected rows means a version race
	rows := sqlmock.NewRows(serverNoteColumns()).
		AddRow("note-1", "t", "c", `[]`, now, now, nil, 1, int64(5))
	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(int64(7), "note-1").
		WillReturnRows(rows)

	_, err := repo.PutNote(context.Background(), 7, models.Note{ID: "note-1"}, 2)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
}

func TestServerPutNote_UpdateMissingNote(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE notes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(int64(7), "note-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.PutNote(context.Background(), 7, models.Note{ID: "note-1"}, 2)
	if !errors.Is(err, ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestServerListNotes(t *testing.T) {
	repo, mock, db := newTestServerNoteRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(serverNoteColumns()).
		AddRow("note-2", "b", "c", `[]`, now, now, nil, 1, int64(1)).
		AddRow("note-1", "a", "c", `[]`, now, now.Add(-time.Minute), nil, 1, int64(2))

	mock.ExpectQuery("SELECT id, title, content").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	notes, err := repo.ListNotes(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
}
