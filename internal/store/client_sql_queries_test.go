package store

import (
	"strings"
	"testing"
)

func TestBuildListNotesQuery_DefaultFiltersTombstones(t *testing.T) {
	query, args, err := buildListNotesQuery(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(query, "deleted_at IS NULL") {
		t.Errorf("expected tombstone filter in query, got: %s", query)
	}
	if !strings.Contains(query, "ORDER BY updated_at DESC, id") {
		t.Errorf("expected deterministic ordering, got: %s", query)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildListNotesQuery_IncludeDeleted(t *testing.T) {
	query, _, err := buildListNotesQuery(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(query, "deleted_at") {
		t.Errorf("expected no tombstone filter, got: %s", query)
	}
}
