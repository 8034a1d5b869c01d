package http

import (
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, *mock.MockAuthService, *mock.MockNoteService) {
	t.Helper()
	mockAuth := mock.NewMockAuthService(ctrl)
	mockNotes := mock.NewMockNoteService(ctrl)

	services := &service.Services{
		AuthService: mockAuth,
		NoteService: mockNotes,
	}

	h := NewHandler(services, logger.Nop())
	require.NotNil(t, h)

	return h, mockAuth, mockNotes
}

func TestHandler_Init_BuildsRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)
	require.NotNil(t, h.Init())
}
