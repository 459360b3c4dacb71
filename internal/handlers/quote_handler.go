package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"servioBack/internal/models"
	"servioBack/internal/services"
	"servioBack/utils"
)

const maxPhotoSize = 10 << 20

type QuoteHandler struct {
	Service *services.QuoteService
	Storage *utils.Storage
}

func sessionID(r *http.Request) string {
	return r.Header.Get("X-Session-ID")
}

func (h *QuoteHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	if sid == "" {
		http.Error(w, "missing X-Session-ID header", http.StatusBadRequest)
		return
	}

	draft, err := h.Service.GetDraft(r.Context(), sid)
	if err != nil {
		if errors.Is(err, models.ErrDraftNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(draft)
}

// UpdateDraft merges one wizard step into the session's draft and returns
// the accumulated state.
func (h *QuoteHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	if sid == "" {
		http.Error(w, "missing X-Session-ID header", http.StatusBadRequest)
		return
	}

	var step map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&step); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	draft, err := h.Service.UpdateDraft(r.Context(), sid, step)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(draft)
}

func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	if userID == 0 {
		http.Error(w, "user not authorized", http.StatusUnauthorized)
		return
	}

	sid := sessionID(r)
	if sid == "" {
		http.Error(w, "missing X-Session-ID header", http.StatusBadRequest)
		return
	}

	quote, err := h.Service.Submit(r.Context(), sid, userID)
	if err != nil {
		if errors.Is(err, models.ErrDraftNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if isForeignKeyConstraintError(err) {
			http.Error(w, "referenced catalog entry does not exist", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(quote)
}

// SubmitDirect accepts a fully assembled quote in one request for clients
// that keep wizard state locally.
func (h *QuoteHandler) SubmitDirect(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	if userID == 0 {
		http.Error(w, "user not authorized", http.StatusUnauthorized)
		return
	}

	var quote models.QuoteDetails
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	quote.ClientID = &userID

	created, err := h.Service.SubmitDirect(r.Context(), quote)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			http.Error(w, "referenced catalog entry does not exist", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *QuoteHandler) GetQuoteByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid quote ID", http.StatusBadRequest)
		return
	}

	quote, err := h.Service.GetQuoteByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrQuoteNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}

func (h *QuoteHandler) ListMyQuotes(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	if userID == 0 {
		http.Error(w, "user not authorized", http.StatusUnauthorized)
		return
	}

	quotes, err := h.Service.ListByClient(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quotes)
}

func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid quote ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, models.ErrQuoteNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrInvalidStatusTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadPhoto stores one wizard photo in the bucket and returns its URL so
// the client can attach it to the draft.
func (h *QuoteHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		http.Error(w, "photo storage is not configured", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "missing photo file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		http.Error(w, "failed to read photo", http.StatusInternalServerError)
		return
	}

	fileName := fmt.Sprintf("%s-%s", uuid.NewString(), header.Filename)
	url, err := h.Storage.UploadFile(data, fileName, "quote_photos")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
