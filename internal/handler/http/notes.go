package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	notes, err := h.services.NoteService.ListNotes(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("listing notes failed")
		writeError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.NotesResponse{Notes: notes, Length: len(notes)}, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	note, err := h.services.NoteService.GetNote(ctx, userID, id)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("note_id", id).Msg("note lookup failed")
		writeError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) putNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.PutNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	stored, err := h.services.NoteService.PutNote(ctx, userID, req.Note, req.Version)
	if err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("note_id", req.Note.ID).
			Int64("expected_version", req.Version).
			Msg("note save failed")
		writeError(w, err)
		return
	}

	_, _ = utils.WriteJSON(w, stored, http.StatusOK)
}
