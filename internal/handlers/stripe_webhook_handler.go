package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/stripe/stripe-go/v76/webhook"

	"servioBack/internal/services"
)

const maxWebhookBody = 65536

type StripeWebhookHandler struct {
	Billing       *services.BillingService
	WebhookSecret string
	ErrorLog      *log.Logger
}

// HandleWebhook verifies the Stripe signature and applies the event.
// Processing errors return 500 so Stripe retries the delivery; the upsert is
// idempotent, so retries are safe.
func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusServiceUnavailable)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	if err := h.Billing.HandleWebhookEvent(r.Context(), string(event.Type), event.Data.Raw); err != nil {
		if h.ErrorLog != nil {
			h.ErrorLog.Printf("stripe webhook %s: %v", event.Type, err)
		}
		http.Error(w, "event processing failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
