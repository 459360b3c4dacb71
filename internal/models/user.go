package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	RoleClient   = "client"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

type User struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	Password   string     `json:"password,omitempty"`
	Role       string     `json:"role"`
	Bio        string     `json:"bio,omitempty"`
	AvatarPath *string    `json:"avatar_path,omitempty"`
	FCMToken   *string    `json:"fcm_token,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type Session struct {
	UserID       int       `json:"user_id"`
	Role         string    `json:"role"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// ProviderSettings holds the location and coverage configuration a provider
// must fill in before they can appear in match results.
type ProviderSettings struct {
	UserID          int      `json:"user_id"`
	City            string   `json:"city"`
	Neighborhood    string   `json:"neighborhood"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	ServiceRadiusKm float64  `json:"service_radius_km"`
}
