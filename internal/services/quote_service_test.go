package services

import (
	"testing"

	"servioBack/internal/models"
)

func TestQuoteStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to accepted", models.QuoteStatusPending, models.QuoteStatusAccepted, true},
		{"pending to rejected", models.QuoteStatusPending, models.QuoteStatusRejected, true},
		{"pending to completed", models.QuoteStatusPending, models.QuoteStatusCompleted, false},
		{"accepted to completed", models.QuoteStatusAccepted, models.QuoteStatusCompleted, true},
		{"accepted to rejected", models.QuoteStatusAccepted, models.QuoteStatusRejected, false},
		{"rejected is terminal", models.QuoteStatusRejected, models.QuoteStatusAccepted, false},
		{"completed is terminal", models.QuoteStatusCompleted, models.QuoteStatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transitionAllowed(tt.from, tt.to); got != tt.allowed {
				t.Fatalf("expected %v got %v", tt.allowed, got)
			}
		})
	}
}

func TestValidateQuote(t *testing.T) {
	lat, lon := -23.55, -46.63

	tests := []struct {
		name    string
		quote   models.QuoteDetails
		wantErr bool
	}{
		{
			name:    "missing service",
			quote:   models.QuoteDetails{Address: models.Address{City: "Almaty"}},
			wantErr: true,
		},
		{
			name:    "missing address",
			quote:   models.QuoteDetails{ServiceID: 1},
			wantErr: true,
		},
		{
			name:    "city only",
			quote:   models.QuoteDetails{ServiceID: 1, Address: models.Address{City: "Almaty"}},
			wantErr: false,
		},
		{
			name: "coordinates only",
			quote: models.QuoteDetails{
				ServiceID: 1,
				Address:   models.Address{Latitude: &lat, Longitude: &lon},
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuote(tt.quote)
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
