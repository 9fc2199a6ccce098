package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ai-quota-dash-go/internal/storage"
)

// AuthService guards the dashboard behind an optional admin password.
// When no password is configured all checks pass.
type AuthService struct {
	store         storage.Store
	adminPassword string
	jwtSecret     []byte
	sessionTTL    time.Duration
}

func NewAuthService(store storage.Store, adminPassword, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		store:         store,
		adminPassword: adminPassword,
		jwtSecret:     []byte(jwtSecret),
		sessionTTL:    sessionTTL,
	}
}

// IsAuthRequired checks if authentication is required
func (s *AuthService) IsAuthRequired() bool {
	return s.adminPassword != ""
}

// ValidatePassword checks if the password is correct
func (s *AuthService) ValidatePassword(password string) bool {
	if s.adminPassword == "" {
		return true
	}
	return password == s.adminPassword
}

// CreateSession creates a new session
func (s *AuthService) CreateSession(ctx context.Context) (string, error) {
	session := &storage.Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	if err := s.store.SaveSession(ctx, session, s.sessionTTL); err != nil {
		return "", err
	}
	return session.ID, nil
}

// ValidateSession checks if a session is valid
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) bool {
	if s.adminPassword == "" {
		return true
	}
	if sessionID == "" {
		return false
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil || session == nil {
		return false
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.store.DeleteSession(ctx, sessionID)
		return false
	}
	return true
}

// DeleteSession removes a session
func (s *AuthService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.store.DeleteSession(ctx, sessionID)
}

// GenerateJWT creates a JWT token (alternative to session cookies for API
// clients)
func (s *AuthService) GenerateJWT() (string, error) {
	claims := jwt.MapClaims{
		"authorized": true,
		"exp":        time.Now().Add(s.sessionTTL).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateJWT validates a JWT token
func (s *AuthService) ValidateJWT(tokenString string) bool {
	if s.adminPassword == "" {
		return true
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	return err == nil && token.Valid
}

// SessionTTL exposes the configured session lifetime for cookie expiry.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}
