package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"servioBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (name, phone, email, password, role, bio, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Name, user.Phone, user.Email, user.Password, user.Role, user.Bio, time.Now())
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return models.User{}, models.ErrDuplicateUser
		}
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	user.ID = int(id)
	user.Password = ""
	return user, nil
}

func (r *UserRepository) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, phone, email, password, role, bio, created_at
		FROM users WHERE phone = ?`, phone).
		Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.Password, &u.Role, &u.Bio, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, phone, email, role, bio, fcm_token, created_at
		FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.Role, &u.Bio, &u.FCMToken, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, phone, email, role, bio, fcm_token, created_at
		FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Phone, &u.Email, &u.Role, &u.Bio, &u.FCMToken, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID int, role string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET role = ?, updated_at = ? WHERE id = ?`, role, time.Now(), userID)
	return err
}

func (r *UserRepository) UpdateFCMToken(ctx context.Context, userID int, token string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET fcm_token = ? WHERE id = ?`, token, userID)
	return err
}

func (r *UserRepository) SaveSession(ctx context.Context, session models.Session) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (user_id, role, refresh_token, expires_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)`,
		session.UserID, session.Role, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var s models.Session
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, role, refresh_token, expires_at
		FROM sessions WHERE refresh_token = ?`, refreshToken).
		Scan(&s.UserID, &s.Role, &s.RefreshToken, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, err
	}
	return s, nil
}

func (r *UserRepository) SaveProviderSettings(ctx context.Context, s models.ProviderSettings) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO provider_settings (user_id, city, neighborhood, latitude, longitude, service_radius_km)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			city = VALUES(city), neighborhood = VALUES(neighborhood),
			latitude = VALUES(latitude), longitude = VALUES(longitude),
			service_radius_km = VALUES(service_radius_km)`,
		s.UserID, s.City, s.Neighborhood, s.Latitude, s.Longitude, s.ServiceRadiusKm)
	return err
}

func (r *UserRepository) UpsertSpecialtyPrice(ctx context.Context, userID, specialtyID int, basePrice float64) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO provider_specialties (user_id, specialty_id, base_price)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE base_price = VALUES(base_price)`,
		userID, specialtyID, basePrice)
	return err
}

func (r *UserRepository) UpsertItemPrice(ctx context.Context, userID, itemID int, pricePerUnit float64) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO provider_item_prices (user_id, item_id, price_per_unit)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE price_per_unit = VALUES(price_per_unit)`,
		userID, itemID, pricePerUnit)
	return err
}
