// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpRemoteStore struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPRemoteStore constructs the HTTP/REST implementation of
// [RemoteStore]. It normalises and validates the base URL from
// cfg.HTTPAddress and configures the underlying client with the resolved base
// URL and request timeout.
func NewHTTPRemoteStore(cfg config.ClientAdapter, logger *logger.Logger) (RemoteStore, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpRemoteStore{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteStore]. The stored token (whitespace-trimmed) is
// attached to the Authorization header of all subsequent authenticated
// requests.
func (h *httpRemoteStore) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteStore].
func (h *httpRemoteStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [RemoteStore]. It POSTs the credentials to
// POST /api/user/register and stores the returned bearer token via SetToken.
func (h *httpRemoteStore) Register(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, user, "/api/user/register")
}

// Login implements [RemoteStore]. It POSTs the credentials to
// POST /api/user/login and stores the returned bearer token via SetToken.
func (h *httpRemoteStore) Login(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, user, "/api/user/login")
}

func (h *httpRemoteStore) authenticate(ctx context.Context, user models.User, path string) (models.Token, error) {
	var token models.Token

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&token).
		Post(path)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}
	if token.SignedString == "" {
		return models.Token{}, fmt.Errorf("empty token in auth response")
	}

	h.SetToken(token.SignedString)
	return token, nil
}

// Get implements [RemoteStore]. It fetches a single note from
// GET /api/notes/{id}.
func (h *httpRemoteStore) Get(ctx context.Context, id string) (models.Note, error) {
	var note models.Note

	resp, err := h.authedRequest(ctx).
		SetResult(&note).
		Get("/api/notes/" + url.PathEscape(id))
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	return note, nil
}

// Put implements [RemoteStore]. It sends the note with the last observed
// remote_version to PUT /api/notes and decodes the stored record from the
// response. Returns [ErrVersionConflict] (wrapped) on HTTP 409.
func (h *httpRemoteStore) Put(ctx context.Context, note models.Note, expectedVersion int64) (models.Note, error) {
	var stored models.Note

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.PutNoteRequest{Note: note, Version: expectedVersion}).
		SetResult(&stored).
		Put("/api/notes")
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	return stored, nil
}

// ListAll implements [RemoteStore]. It fetches every note from
// GET /api/notes, tombstones included.
func (h *httpRemoteStore) ListAll(ctx context.Context) ([]models.Note, error) {
	resp, err := h.authedRequest(ctx).Get("/api/notes")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServerUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var nr models.NotesResponse
	if err = json.Unmarshal(resp.Body(), &nr); err != nil {
		return nil, fmt.Errorf("decode notes response: %w", err)
	}

	return nr.Notes, nil
}

func (h *httpRemoteStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
