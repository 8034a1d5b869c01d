package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ── register ─────────────────────────────────────────────────────────────────

func TestHandler_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	user := models.User{Login: "alice", Password: "secret"}
	registered := models.User{UserID: 7, Login: "alice"}

	gomock.InOrder(
		mockAuth.EXPECT().RegisterUser(gomock.Any(), user).Return(registered, nil),
		mockAuth.EXPECT().CreateToken(gomock.Any(), registered).
			Return(models.Token{SignedString: "signed-jwt", UserID: 7}, nil),
	)

	rec := postJSON(t, router, "/api/user/register", user)
	require.Equal(t, http.StatusOK, rec.Code)

	var token models.Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.Equal(t, "signed-jwt", token.SignedString)
	assert.Equal(t, int64(7), token.UserID)
}

func TestHandler_Register_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)
	router := h.Init()

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Register_LoginTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrLoginAlreadyExists)

	rec := postJSON(t, router, "/api/user/register", models.User{Login: "alice", Password: "secret"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}

func TestHandler_Register_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrValidation)

	rec := postJSON(t, router, "/api/user/register", models.User{Login: "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ── login ────────────────────────────────────────────────────────────────────

func TestHandler_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	user := models.User{Login: "alice", Password: "secret"}
	found := models.User{UserID: 7, Login: "alice"}

	gomock.InOrder(
		mockAuth.EXPECT().Login(gomock.Any(), user).Return(found, nil),
		mockAuth.EXPECT().CreateToken(gomock.Any(), found).
			Return(models.Token{SignedString: "signed-jwt", UserID: 7}, nil),
	)

	rec := postJSON(t, router, "/api/user/login", user)
	require.Equal(t, http.StatusOK, rec.Code)

	var token models.Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.Equal(t, "signed-jwt", token.SignedString)
}

func TestHandler_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, service.ErrWrongPassword)

	rec := postJSON(t, router, "/api/user/login", models.User{Login: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_Login_TokenCreationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, mockAuth, _ := newTestHandler(t, ctrl)
	router := h.Init()

	gomock.InOrder(
		mockAuth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{UserID: 7}, nil),
		mockAuth.EXPECT().CreateToken(gomock.Any(), gomock.Any()).
			Return(models.Token{}, errors.New("sign failure")),
	)

	rec := postJSON(t, router, "/api/user/login", models.User{Login: "alice", Password: "secret"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
