package store

// Server-side Postgres queries. Tags are stored as a JSON text column, the
// same encoding the client store uses; timestamps are timestamptz so
// cross-device comparisons stay unambiguous.
const (
	createUser = `INSERT INTO users (login, password_hash)
		VALUES ($1, $2)
		RETURNING user_id, login;`

	findUserByLogin = `SELECT user_id, login, password_hash
		FROM users
		WHERE login = $1;`

	getServerNote = `SELECT id, title, content, tags, created_at, updated_at, deleted_at, word_count, remote_version
		FROM notes
		WHERE user_id = $1 AND id = $2;`

	listServerNotes = `SELECT id, title, content, tags, created_at, updated_at, deleted_at, word_count, remote_version
		FROM notes
		WHERE user_id = $1
		ORDER BY updated_at DESC, id;`

	insertServerNote = `INSERT INTO notes (id, user_id, title, content, tags, created_at, updated_at, deleted_at, word_count, remote_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1);`

	// The WHERE clause enforces the optimistic version check: zero affected
	// rows with an existing note means another device advanced the version.
	updateServerNote = `UPDATE notes
		SET title = $3,
			content = $4,
			tags = $5,
			updated_at = $6,
			deleted_at = $7,
			word_count = $8,
			remote_version = remote_version + 1
		WHERE user_id = $1 AND id = $2 AND remote_version = $9;`
)
