package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/louisbranch/formdesk/internal/platform/errors"
)

// sessionClaims is the JWT payload carried by the session cookie.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Session is an issued web session.
type Session struct {
	Token     string
	UserID    string
	Email     string
	Name      string
	ExpiresAt time.Time
}

func (s *Service) mintSession(userID, email, name string) (Session, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.SessionTTL)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    sessionIssuer,
		},
		Email: email,
		Name:  name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return Session{}, fmt.Errorf("sign session token: %w", err)
	}
	return Session{
		Token:     signed,
		UserID:    userID,
		Email:     email,
		Name:      name,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateSession parses a session token and returns its identity claims.
func (s *Service) ValidateSession(token string) (Session, error) {
	if token == "" {
		return Session{}, apperrors.E(apperrors.KindUnauthorized, "session token is required")
	}
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Session{}, apperrors.Wrap(apperrors.KindUnauthorized, "invalid session token", err)
	}
	expiresAt := time.Time{}
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return Session{
		Token:     token,
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		ExpiresAt: expiresAt,
	}, nil
}
