package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"servioBack/internal/models"
	"servioBack/internal/services"
)

type SubscriptionHandler struct {
	Service *services.SubscriptionService
	Billing *services.BillingService
	Users   *services.UserService
}

// GetPlans returns the public pricing table. Served from cache when the
// store is slow.
func (h *SubscriptionHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Service.GetPlans(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plans)
}

// GetEntitlements returns the authenticated user's tier limits. A null limit
// means unlimited.
func (h *SubscriptionHandler) GetEntitlements(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	if userID == 0 {
		http.Error(w, "user not authorized", http.StatusUnauthorized)
		return
	}

	limits, err := h.Service.Entitlements(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(limits)
}

// CreateCheckoutSession starts a Stripe checkout for the requested plan and
// returns the hosted payment URL.
func (h *SubscriptionHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	if userID == 0 {
		http.Error(w, "user not authorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		PlanCode string `json:"plan_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetUserByID(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	url, err := h.Billing.CreateCheckoutSession(r.Context(), user, req.PlanCode)
	if err != nil {
		if errors.Is(err, models.ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"checkout_url": url})
}

// CreatePortalSession opens the Stripe billing portal for plan changes and
// cancellation.
func (h *SubscriptionHandler) CreatePortalSession(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	if userID == 0 {
		http.Error(w, "user not authorized", http.StatusUnauthorized)
		return
	}

	url, err := h.Billing.CreatePortalSession(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNoActiveSubscription) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"portal_url": url})
}
