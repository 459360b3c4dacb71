package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"servioBack/internal/models"
)

type QuoteRepository struct {
	DB       *sql.DB
	ErrorLog *log.Logger
}

// SubmitQuote persists a quote request with its answers, items and
// measurements in one transaction. When the store cannot open a transaction
// it falls back to sequential inserts; that path has no compensating
// rollback, so a failure partway through leaves a partial record (accepted
// behavior, only logged).
func (r *QuoteRepository) SubmitQuote(ctx context.Context, quote models.QuoteDetails) (models.QuoteDetails, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		if r.ErrorLog != nil {
			r.ErrorLog.Printf("quote submit: begin tx unavailable, falling back to direct inserts: %v", err)
		}
		return r.submitSequential(ctx, quote)
	}

	id, err := r.insertQuote(ctx, tx, quote)
	if err != nil {
		tx.Rollback()
		return models.QuoteDetails{}, err
	}
	if err := r.insertChildren(ctx, tx, id, quote); err != nil {
		tx.Rollback()
		return models.QuoteDetails{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.QuoteDetails{}, err
	}

	quote.ID = id
	quote.Status = models.QuoteStatusPending
	return quote, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (r *QuoteRepository) insertQuote(ctx context.Context, db execer, quote models.QuoteDetails) (int, error) {
	photos, err := json.Marshal(quote.PhotoURLs)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO quote_requests
			(service_id, sub_service_id, specialty_id, client_id, description,
			 street, number, complement, neighborhood, city, state, zip_code,
			 latitude, longitude, preferred_date, preferred_date_end,
			 time_preference, photo_urls, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		quote.ServiceID, quote.SubServiceID, quote.SpecialtyID, quote.ClientID, quote.Description,
		quote.Address.Street, quote.Address.Number, quote.Address.Complement,
		quote.Address.Neighborhood, quote.Address.City, quote.Address.State, quote.Address.ZipCode,
		quote.Address.Latitude, quote.Address.Longitude,
		quote.PreferredDate, quote.PreferredDateEnd, quote.TimePreference,
		string(photos), models.QuoteStatusPending, time.Now())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *QuoteRepository) insertChildren(ctx context.Context, db execer, quoteID int, quote models.QuoteDetails) error {
	for _, a := range quote.Answers {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO quote_answers (quote_id, question_id, answer) VALUES (?, ?, ?)`,
			quoteID, a.QuestionID, a.Answer); err != nil {
			return err
		}
	}
	for itemID, qty := range quote.Items {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO quote_items (quote_id, item_id, quantity) VALUES (?, ?, ?)`,
			quoteID, itemID, qty); err != nil {
			return err
		}
	}
	for _, m := range quote.Measurements {
		area := m.Area
		if area == nil {
			computed := m.Width * m.Length
			area = &computed
		}
		if _, err := db.ExecContext(ctx, `
			INSERT INTO quote_measurements (quote_id, room_name, width, length, height, kind, area)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			quoteID, m.RoomName, m.Width, m.Length, m.Height, m.Kind, area); err != nil {
			return err
		}
	}
	return nil
}

func (r *QuoteRepository) submitSequential(ctx context.Context, quote models.QuoteDetails) (models.QuoteDetails, error) {
	id, err := r.insertQuote(ctx, r.DB, quote)
	if err != nil {
		return models.QuoteDetails{}, err
	}
	if err := r.insertChildren(ctx, r.DB, id, quote); err != nil {
		if r.ErrorLog != nil {
			r.ErrorLog.Printf("quote submit: partial record for quote %d: %v", id, err)
		}
		return models.QuoteDetails{}, err
	}
	quote.ID = id
	quote.Status = models.QuoteStatusPending
	return quote, nil
}

func (r *QuoteRepository) GetQuoteByID(ctx context.Context, id int) (models.QuoteDetails, error) {
	var q models.QuoteDetails
	var photos sql.NullString
	err := r.DB.QueryRowContext(ctx, `
		SELECT qr.id, qr.service_id, qr.sub_service_id, qr.specialty_id, qr.client_id,
		       qr.description, qr.street, qr.number, qr.complement, qr.neighborhood,
		       qr.city, qr.state, qr.zip_code, qr.latitude, qr.longitude,
		       qr.preferred_date, qr.preferred_date_end, qr.time_preference,
		       qr.photo_urls, qr.status, qr.created_at,
		       cs.name, COALESCE(css.name, ''), COALESCE(csp.name, '')
		FROM quote_requests qr
		JOIN catalog_services cs ON cs.id = qr.service_id
		LEFT JOIN catalog_sub_services css ON css.id = qr.sub_service_id
		LEFT JOIN catalog_specialties csp ON csp.id = qr.specialty_id
		WHERE qr.id = ?`, id).
		Scan(&q.ID, &q.ServiceID, &q.SubServiceID, &q.SpecialtyID, &q.ClientID,
			&q.Description, &q.Address.Street, &q.Address.Number, &q.Address.Complement,
			&q.Address.Neighborhood, &q.Address.City, &q.Address.State, &q.Address.ZipCode,
			&q.Address.Latitude, &q.Address.Longitude,
			&q.PreferredDate, &q.PreferredDateEnd, &q.TimePreference,
			&photos, &q.Status, &q.CreatedAt,
			&q.ServiceName, &q.SubServiceName, &q.SpecialtyName)
	if errors.Is(err, sql.ErrNoRows) {
		return models.QuoteDetails{}, models.ErrQuoteNotFound
	}
	if err != nil {
		return models.QuoteDetails{}, err
	}
	if photos.Valid && photos.String != "" {
		if err := json.Unmarshal([]byte(photos.String), &q.PhotoURLs); err != nil {
			return models.QuoteDetails{}, err
		}
	}

	if err := r.loadChildren(ctx, &q); err != nil {
		return models.QuoteDetails{}, err
	}
	return q, nil
}

func (r *QuoteRepository) loadChildren(ctx context.Context, q *models.QuoteDetails) error {
	itemRows, err := r.DB.QueryContext(ctx, `SELECT item_id, quantity FROM quote_items WHERE quote_id = ?`, q.ID)
	if err != nil {
		return err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var itemID, qty int
		if err := itemRows.Scan(&itemID, &qty); err != nil {
			return err
		}
		if q.Items == nil {
			q.Items = make(map[int]int)
		}
		q.Items[itemID] = qty
	}
	if err := itemRows.Err(); err != nil {
		return err
	}

	mRows, err := r.DB.QueryContext(ctx, `
		SELECT room_name, width, length, height, kind, area
		FROM quote_measurements WHERE quote_id = ?`, q.ID)
	if err != nil {
		return err
	}
	defer mRows.Close()
	for mRows.Next() {
		var m models.RoomMeasurement
		if err := mRows.Scan(&m.RoomName, &m.Width, &m.Length, &m.Height, &m.Kind, &m.Area); err != nil {
			return err
		}
		q.Measurements = append(q.Measurements, m)
	}
	if err := mRows.Err(); err != nil {
		return err
	}

	aRows, err := r.DB.QueryContext(ctx, `SELECT question_id, answer FROM quote_answers WHERE quote_id = ?`, q.ID)
	if err != nil {
		return err
	}
	defer aRows.Close()
	for aRows.Next() {
		var a models.QuestionAnswer
		if err := aRows.Scan(&a.QuestionID, &a.Answer); err != nil {
			return err
		}
		q.Answers = append(q.Answers, a)
	}
	return aRows.Err()
}

func (r *QuoteRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE quote_requests SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrQuoteNotFound
	}
	return nil
}

func (r *QuoteRepository) ListByClient(ctx context.Context, clientID int) ([]models.QuoteDetails, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT qr.id, qr.service_id, qr.status, qr.city, qr.created_at, cs.name
		FROM quote_requests qr
		JOIN catalog_services cs ON cs.id = qr.service_id
		WHERE qr.client_id = ?
		ORDER BY qr.created_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []models.QuoteDetails
	for rows.Next() {
		var q models.QuoteDetails
		if err := rows.Scan(&q.ID, &q.ServiceID, &q.Status, &q.Address.City, &q.CreatedAt, &q.ServiceName); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}
