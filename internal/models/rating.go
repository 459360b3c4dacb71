package models

import "time"

type Rating struct {
	ID         int       `json:"id"`
	ProviderID int       `json:"provider_id"`
	ClientID   int       `json:"client_id"`
	QuoteID    int       `json:"quote_id"`
	Rating     float64   `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
