package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"servioBack/internal/models"
	"servioBack/internal/services"
)

type RatingHandler struct {
	Service *services.RatingService
}

func (h *RatingHandler) AddRating(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	if userID == 0 {
		http.Error(w, "user not authorized", http.StatusUnauthorized)
		return
	}

	var rating models.Rating
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	rating.ClientID = userID

	if rating.Rating < 1 || rating.Rating > 5 {
		http.Error(w, "rating must be between 1 and 5", http.StatusBadRequest)
		return
	}

	created, err := h.Service.AddRating(r.Context(), rating)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrQuoteNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrQuoteNotCompleted):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, models.ErrAlreadyRated):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *RatingHandler) GetProviderRatings(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.Atoi(getParam(r, "provider_id"))
	if err != nil {
		http.Error(w, "invalid provider_id", http.StatusBadRequest)
		return
	}

	ratings, err := h.Service.GetByProvider(r.Context(), providerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	avg, err := h.Service.AverageRating(r.Context(), providerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"average": avg,
		"ratings": ratings,
	})
}
