package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"servioBack/internal/models"
	"servioBack/internal/repositories"
)

// Notifier delivers realtime events to a connected user. The websocket hub
// in cmd implements it.
type Notifier interface {
	NotifyUser(userID int, event string, payload interface{})
}

type QuoteService struct {
	QuoteRepo *repositories.QuoteRepository
	Drafts    *repositories.DraftStore
	Notifier  Notifier
}

var quoteStatusTransitions = map[string][]string{
	models.QuoteStatusPending:  {models.QuoteStatusAccepted, models.QuoteStatusRejected},
	models.QuoteStatusAccepted: {models.QuoteStatusCompleted},
}

func (s *QuoteService) GetDraft(ctx context.Context, sessionID string) (map[string]json.RawMessage, error) {
	return s.Drafts.Get(ctx, sessionID)
}

// UpdateDraft merges one wizard step into the session's draft.
func (s *QuoteService) UpdateDraft(ctx context.Context, sessionID string, step map[string]json.RawMessage) (map[string]json.RawMessage, error) {
	return s.Drafts.Merge(ctx, sessionID, step)
}

// Submit turns the accumulated draft into a persisted quote request. The
// draft is discarded only after the store accepted the record, and the fully
// assembled QuoteDetails is returned for the matching screen.
func (s *QuoteService) Submit(ctx context.Context, sessionID string, clientID int) (models.QuoteDetails, error) {
	draft, err := s.Drafts.Get(ctx, sessionID)
	if err != nil {
		return models.QuoteDetails{}, err
	}
	quote, err := repositories.BuildQuote(draft)
	if err != nil {
		return models.QuoteDetails{}, err
	}
	if err := validateQuote(quote); err != nil {
		return models.QuoteDetails{}, err
	}
	quote.ClientID = &clientID

	submitted, err := s.QuoteRepo.SubmitQuote(ctx, quote)
	if err != nil {
		return models.QuoteDetails{}, err
	}

	if err := s.Drafts.Delete(ctx, sessionID); err != nil && s.QuoteRepo.ErrorLog != nil {
		s.QuoteRepo.ErrorLog.Printf("quote submit: failed to drop draft %s: %v", sessionID, err)
	}
	if s.Notifier != nil {
		s.Notifier.NotifyUser(clientID, "quote_submitted", map[string]interface{}{
			"quote_id": submitted.ID,
		})
	}
	return submitted, nil
}

// SubmitDirect persists an already assembled quote, bypassing the draft
// store. Used by clients that keep the wizard state on their side.
func (s *QuoteService) SubmitDirect(ctx context.Context, quote models.QuoteDetails) (models.QuoteDetails, error) {
	if err := validateQuote(quote); err != nil {
		return models.QuoteDetails{}, err
	}
	return s.QuoteRepo.SubmitQuote(ctx, quote)
}

func (s *QuoteService) GetQuoteByID(ctx context.Context, id int) (models.QuoteDetails, error) {
	return s.QuoteRepo.GetQuoteByID(ctx, id)
}

func (s *QuoteService) ListByClient(ctx context.Context, clientID int) ([]models.QuoteDetails, error) {
	return s.QuoteRepo.ListByClient(ctx, clientID)
}

// UpdateStatus applies a provider or client action to a stored quote.
// Allowed transitions: pending -> accepted/rejected -> completed.
func (s *QuoteService) UpdateStatus(ctx context.Context, id int, status string) error {
	quote, err := s.QuoteRepo.GetQuoteByID(ctx, id)
	if err != nil {
		return err
	}
	if !transitionAllowed(quote.Status, status) {
		return models.ErrInvalidStatusTransition
	}
	if err := s.QuoteRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if s.Notifier != nil && quote.ClientID != nil {
		s.Notifier.NotifyUser(*quote.ClientID, "quote_status", map[string]interface{}{
			"quote_id": id,
			"status":   status,
		})
	}
	return nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range quoteStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func validateQuote(quote models.QuoteDetails) error {
	if quote.ServiceID == 0 {
		return errors.New("service is required")
	}
	addr := quote.Address
	if strings.TrimSpace(addr.City) == "" && (addr.Latitude == nil || addr.Longitude == nil) {
		return errors.New("address is required")
	}
	return nil
}
