package services

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"servioBack/internal/models"
	"servioBack/internal/repositories"
	"servioBack/utils"
)

const tokenTTL = 120 * time.Minute

func signingKey() []byte {
	if key := os.Getenv("JWT_SIGNING_KEY"); key != "" {
		return []byte(key)
	}
	return []byte("dev-signing-key")
}

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
}

type AuthResult struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

func (s *UserService) SignUp(ctx context.Context, user models.User) (models.User, error) {
	if user.Role == "" {
		user.Role = models.RoleClient
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user.Password = string(hash)
	return s.UserRepo.CreateUser(ctx, user)
}

func (s *UserService) SignIn(ctx context.Context, phone, password string) (AuthResult, error) {
	user, err := s.UserRepo.GetUserByPhone(ctx, phone)
	if errors.Is(err, models.ErrUserNotFound) {
		return AuthResult{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return AuthResult{}, models.ErrInvalidCredentials
	}

	accessToken, err := s.newAccessToken(user.ID, user.Role)
	if err != nil {
		return AuthResult{}, err
	}
	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return AuthResult{}, err
	}

	session := models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(30 * 24 * time.Hour),
	}
	if err := s.UserRepo.SaveSession(ctx, session); err != nil {
		return AuthResult{}, err
	}

	user.Password = ""
	return AuthResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *UserService) newAccessToken(userID int, role string) (string, error) {
	claims := &models.Claims{
		UserID: uint(userID),
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey())
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}

// UpgradeToProvider switches a client account into a provider account. The
// provider still has to configure location and specialties before they can
// be matched.
func (s *UserService) UpgradeToProvider(ctx context.Context, userID int) error {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.RoleProvider {
		return nil
	}
	return s.UserRepo.UpdateRole(ctx, userID, models.RoleProvider)
}

func (s *UserService) SaveProviderSettings(ctx context.Context, settings models.ProviderSettings) error {
	user, err := s.UserRepo.GetUserByID(ctx, settings.UserID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleProvider {
		return models.ErrForbidden
	}
	return s.UserRepo.SaveProviderSettings(ctx, settings)
}

func (s *UserService) SetSpecialtyPrice(ctx context.Context, userID, specialtyID int, basePrice float64) error {
	return s.UserRepo.UpsertSpecialtyPrice(ctx, userID, specialtyID, basePrice)
}

func (s *UserService) SetItemPrice(ctx context.Context, userID, itemID int, pricePerUnit float64) error {
	return s.UserRepo.UpsertItemPrice(ctx, userID, itemID, pricePerUnit)
}

func (s *UserService) RegisterFCMToken(ctx context.Context, userID int, token string) error {
	return s.UserRepo.UpdateFCMToken(ctx, userID, token)
}
