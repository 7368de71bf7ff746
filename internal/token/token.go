package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apierrors "todo-api/internal/errors"
	"todo-api/internal/models"
)

// AuthClaims are carried by the short-lived auth token.
type AuthClaims struct {
	UserID      string             `json:"id"`
	Username    string             `json:"username"`
	AccountType models.AccountType `json:"accountType"`
	jwt.RegisteredClaims
}

// RefreshClaims are carried by the longer-lived refresh token.
type RefreshClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager signs and verifies the two token kinds with distinct keys.
type Manager struct {
	authSecret    []byte
	refreshSecret []byte
	authTTL       time.Duration
	refreshTTL    time.Duration
}

// NewManager creates a Manager. The auth and refresh secrets must differ.
func NewManager(authSecret, refreshSecret string, authTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		authSecret:    []byte(authSecret),
		refreshSecret: []byte(refreshSecret),
		authTTL:       authTTL,
		refreshTTL:    refreshTTL,
	}
}

// SignAuthToken issues an auth token embedding id, username and account type.
func (m *Manager) SignAuthToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserID:      user.ID,
		Username:    user.Username,
		AccountType: user.AccountType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.authTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.authSecret)
}

// SignRefreshToken issues a refresh token embedding id and username.
func (m *Manager) SignRefreshToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &RefreshClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshSecret)
}

// VerifyAuthToken decodes and validates an auth token. An expired token is
// reported with a distinguished message.
func (m *Manager) VerifyAuthToken(tokenStr string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.authSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apierrors.NewUnauthorized("Authentication token expired")
		}
		return nil, apierrors.NewUnauthorized("Failed to authenticate token")
	}
	if !tkn.Valid {
		return nil, apierrors.NewUnauthorized("Failed to authenticate token")
	}
	return claims, nil
}
