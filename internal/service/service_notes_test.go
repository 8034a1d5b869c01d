// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestServerNoteSvc(t *testing.T, ctrl *gomock.Controller) (NoteService, *mock.MockServerNoteRepository) {
	t.Helper()
	mockNotes := mock.NewMockServerNoteRepository(ctrl)
	return NewNoteService(mockNotes, logger.Nop()), mockNotes
}

func TestNoteService_GetNote_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes := newTestServerNoteSvc(t, ctrl)
	ctx := context.Background()

	want := models.Note{ID: "note-1", Title: "t", RemoteVersion: 3}
	mockNotes.EXPECT().GetNote(ctx, int64(7), "note-1").Return(want, nil)

	got, err := svc.GetNote(ctx, 7, "note-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNoteService_GetNote_EmptyID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestServerNoteSvc(t, ctrl)

	_, err := svc.GetNote(context.Background(), 7, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNoteService_GetNote_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes := newTestServerNoteSvc(t, ctrl)

	mockNotes.EXPECT().GetNote(gomock.Any(), int64(7), "missing").
		Return(models.Note{}, store.ErrNoteNotFound)

	_, err := svc.GetNote(context.Background(), 7, "missing")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteService_PutNote_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes := newTestServerNoteSvc(t, ctrl)
	ctx := context.Background()

	note := models.Note{ID: "note-1", Content: "c", UpdatedAt: time.Now().UTC()}
	stored := note
	stored.RemoteVersion = 3

	mockNotes.EXPECT().PutNote(ctx, int64(7), note, int64(2)).Return(stored, nil)

	got, err := svc.PutNote(ctx, 7, note, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.RemoteVersion)
}

func TestNoteService_PutNote_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestServerNoteSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.PutNote(ctx, 7, models.Note{}, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.PutNote(ctx, 7, models.Note{ID: "note-1"}, -1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNoteService_PutNote_VersionConflictBubblesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes := newTestServerNoteSvc(t, ctrl)

	mockNotes.EXPECT().PutNote(gomock.Any(), int64(7), gomock.Any(), int64(1)).
		Return(models.Note{}, store.ErrVersionConflict)

	_, err := svc.PutNote(context.Background(), 7, models.Note{ID: "note-1"}, 1)
	assert.ErrorIs(t, err, store.ErrVersionConflict,
		"the handler maps this to a 409 and needs the sentinel intact")
}

func TestNoteService_PutNote_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes := newTestServerNoteSvc(t, ctrl)

	mockNotes.EXPECT().PutNote(gomock.Any(), int64(7), gomock.Any(), int64(0)).
		Return(models.Note{}, errors.New("connection reset"))

	_, err := svc.PutNote(context.Background(), 7, models.Note{ID: "note-1"}, 0)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestNoteService_ListNotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockNotes := newTestServerNoteSvc(t, ctrl)
	ctx := context.Background()

	deletedAt := time.Now().UTC()
	notes := []models.Note{{ID: "a"}, {ID: "b", DeletedAt: &deletedAt}}
	mockNotes.EXPECT().ListNotes(ctx, int64(7)).Return(notes, nil)

	got, err := svc.ListNotes(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, notes, got, "tombstones are listed so deletions propagate to devices")
}
