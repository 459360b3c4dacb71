package handlers

import (
	"encoding/json"
	"net/http"

	"servioBack/internal/matching"
	"servioBack/internal/models"
	"servioBack/internal/services"
)

type MatchHandler struct {
	Service *services.MatchService
}

// SearchProviders runs provider matching for the posted quote. The optional
// "sort" query parameter re-orders the result; unknown values fall back to
// relevance. Matching failures surface as an empty list, never an error.
func (h *MatchHandler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	var quote models.QuoteDetails
	if err := json.NewDecoder(r.Body).Decode(&quote); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if quote.ServiceID == 0 {
		http.Error(w, "service_id is required", http.StatusBadRequest)
		return
	}

	criterion := matching.SortCriterion(r.URL.Query().Get("sort"))
	switch criterion {
	case matching.SortDistance, matching.SortPrice, matching.SortRating:
	default:
		criterion = matching.SortRelevance
	}

	matches := h.Service.SearchProviders(r.Context(), quote, criterion, currentUserID(r))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}
