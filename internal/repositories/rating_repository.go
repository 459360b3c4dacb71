package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"servioBack/internal/models"
)

type RatingRepository struct {
	DB *sql.DB
}

func (r *RatingRepository) AddRating(ctx context.Context, rating models.Rating) (models.Rating, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO ratings (provider_id, client_id, quote_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rating.ProviderID, rating.ClientID, rating.QuoteID, rating.Rating, rating.Comment, time.Now())
	if err != nil {
		return models.Rating{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Rating{}, err
	}
	rating.ID = int(id)
	return rating, nil
}

// AverageRating is the arithmetic mean of all ratings for a provider, 0 when
// there are none.
func (r *RatingRepository) AverageRating(ctx context.Context, providerID int) (float64, error) {
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM ratings WHERE provider_id = ?`, providerID).Scan(&avg)
	if err != nil {
		return 0, err
	}
	if avg.Valid {
		return avg.Float64, nil
	}
	return 0, nil
}

func (r *RatingRepository) GetByProvider(ctx context.Context, providerID int) ([]models.Rating, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, provider_id, client_id, quote_id, rating, comment, created_at
		FROM ratings WHERE provider_id = ? ORDER BY created_at DESC`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var rt models.Rating
		if err := rows.Scan(&rt.ID, &rt.ProviderID, &rt.ClientID, &rt.QuoteID, &rt.Rating, &rt.Comment, &rt.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

func (r *RatingRepository) HasRatingForQuote(ctx context.Context, quoteID int) (bool, error) {
	var x int
	err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM ratings WHERE quote_id = ? LIMIT 1`, quoteID).Scan(&x)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
