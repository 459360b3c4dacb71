package services

import (
	"context"

	"servioBack/internal/models"
	"servioBack/internal/repositories"
)

type RatingService struct {
	RatingRepo *repositories.RatingRepository
	QuoteRepo  *repositories.QuoteRepository
}

// AddRating records a client's rating of a provider. Only the client who
// owns a completed quote may rate it, once.
func (s *RatingService) AddRating(ctx context.Context, rating models.Rating) (models.Rating, error) {
	quote, err := s.QuoteRepo.GetQuoteByID(ctx, rating.QuoteID)
	if err != nil {
		return models.Rating{}, err
	}
	if quote.Status != models.QuoteStatusCompleted {
		return models.Rating{}, models.ErrQuoteNotCompleted
	}
	if quote.ClientID == nil || *quote.ClientID != rating.ClientID {
		return models.Rating{}, models.ErrForbidden
	}
	rated, err := s.RatingRepo.HasRatingForQuote(ctx, rating.QuoteID)
	if err != nil {
		return models.Rating{}, err
	}
	if rated {
		return models.Rating{}, models.ErrAlreadyRated
	}
	return s.RatingRepo.AddRating(ctx, rating)
}

func (s *RatingService) GetByProvider(ctx context.Context, providerID int) ([]models.Rating, error) {
	return s.RatingRepo.GetByProvider(ctx, providerID)
}

func (s *RatingService) AverageRating(ctx context.Context, providerID int) (float64, error) {
	return s.RatingRepo.AverageRating(ctx, providerID)
}
