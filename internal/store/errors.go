package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoteNotFound is returned when a query or update targets a note id
	// that does not exist in the store.
	ErrNoteNotFound = errors.New("note was not found")

	// ErrConflictNotFound is returned when a lookup targets a sync conflict
	// id that does not exist in the store.
	ErrConflictNotFound = errors.New("sync conflict was not found")

	// ErrMetadataNotFound is returned when the requested metadata key has
	// never been written.
	ErrMetadataNotFound = errors.New("metadata key was not found")

	// ErrNoteNotSaved is returned when an INSERT or UPDATE of a note
	// completes without error but the number of affected rows is zero,
	// indicating that no data was actually persisted.
	ErrNoteNotSaved = errors.New("note was not saved")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the remote version supplied by the client does not match the current
	// version stored in the database, meaning another device has modified
	// the record since the client last synchronized.
	ErrVersionConflict = errors.New("note version conflict occurred")

	// ErrLoginAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same login already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan note row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan note rows")
)
