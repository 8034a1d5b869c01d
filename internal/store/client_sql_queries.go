package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	upsertNote = `INSERT INTO notes (
			id,
			title,
			content,
			tags,
			created_at,
			updated_at,
			deleted_at,
			word_count,
			local_version,
			remote_version,
			last_synced_at,
			sync_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			tags = excluded.tags,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at,
			word_count = excluded.word_count,
			local_version = excluded.local_version,
			remote_version = excluded.remote_version,
			last_synced_at = excluded.last_synced_at,
			sync_status = excluded.sync_status;`

	getSingleNote = `SELECT id, title, content, tags, created_at, updated_at, deleted_at,
			word_count, local_version, remote_version, last_synced_at, sync_status
		FROM notes
		WHERE id = ?;`

	purgeNote = `DELETE FROM notes WHERE id = ?;`

	upsertConflict = `INSERT INTO sync_conflicts (
			conflict_id, note_id, local_note, remote_note, detected_at, resolution, resolved_at, resolved_note
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (conflict_id) DO UPDATE SET
			resolution = excluded.resolution,
			resolved_at = excluded.resolved_at,
			resolved_note = excluded.resolved_note;`

	getSingleConflict = `SELECT conflict_id, note_id, local_note, remote_note, detected_at, resolution, resolved_at, resolved_note
		FROM sync_conflicts
		WHERE conflict_id = ?;`

	listOpenConflicts = `SELECT conflict_id, note_id, local_note, remote_note, detected_at, resolution, resolved_at, resolved_note
		FROM sync_conflicts
		WHERE resolved_at IS NULL
		ORDER BY detected_at;`

	upsertMetadata = `INSERT INTO sync_metadata (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	getMetadataValue = `SELECT value FROM sync_metadata WHERE key = ?;`
)

// buildListNotesQuery builds the dynamic listing query. The default listing
// hides tombstoned notes; includeDeleted widens it for sync passes and the
// purge worker.
func buildListNotesQuery(includeDeleted bool) (string, []any, error) {
	builder := sq.Select(
		"id", "title", "content", "tags", "created_at", "updated_at", "deleted_at",
		"word_count", "local_version", "remote_version", "last_synced_at", "sync_status",
	).From("notes").OrderBy("updated_at DESC", "id")

	if !includeDeleted {
		builder = builder.Where(sq.Eq{"deleted_at": nil})
	}

	return builder.ToSql()
}
