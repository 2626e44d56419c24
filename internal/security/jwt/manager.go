package jwtutil

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Manager signs and verifies HS256 session tokens.
type Manager struct {
	cfg Config
	now func() time.Time
}

func NewManager(cfg Config) *Manager {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	return &Manager{cfg: cfg, now: time.Now}
}

// Sign returns the token string and its claims.
func (m *Manager) Sign(email string) (string, SessionClaims, error) {
	claims := newSessionClaims(email, uuid.NewString(), m.now(), m.cfg.AccessTTL)
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
	if err != nil {
		return "", SessionClaims{}, err
	}
	return s, claims, nil
}

// Parse verifies signature, algorithm and expiry (with clock-skew leeway).
func (m *Manager) Parse(tokenStr string) (*SessionClaims, error) {
	parser := jwt.NewParser(
		jwt.WithLeeway(m.cfg.ClockSkew),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenStr, &SessionClaims{}, func(*jwt.Token) (any, error) {
		return m.cfg.Secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
