package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/city-tourism-backend/internal/config"
)

// Claims carried by both access and refresh tokens.
type Claims struct {
	Username string   `json:"username"`
	UserID   int64    `json:"id"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Manager signs and validates HS256 JWTs for the auth subsystem.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(cfg *config.JWTConfig) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required but was empty")
	}

	return &Manager{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// GenerateAccessToken issues a short-lived access token (30m default).
func (m *Manager) GenerateAccessToken(userID int64, username string, roles []string) (string, error) {
	return m.generate(userID, username, roles, m.accessTTL)
}

// GenerateRefreshToken issues the longer-lived refresh token (7d default).
func (m *Manager) GenerateRefreshToken(userID int64, username string, roles []string) (string, error) {
	return m.generate(userID, username, roles, m.refreshTTL)
}

func (m *Manager) generate(userID int64, username string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		UserID:   userID,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken checks signature, expiry and algorithm, returning the
// embedded claims.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
