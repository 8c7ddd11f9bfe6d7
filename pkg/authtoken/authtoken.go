// Package authtoken issues and verifies the signed session token kept in the
// auth cookie.
package authtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("authtoken: signing secret is empty")
	ErrInvalidToken  = errors.New("authtoken: invalid token")
)

// Session is the identity carried by a valid token.
type Session struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a HS256 token for s valid for ttl from now.
func Issue(secret string, s Session, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: s.Email,
		Role:  s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString([]byte(secret))
}

// Parse verifies raw and returns the session it carries.
func Parse(secret, raw string) (*Session, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if raw == "" {
		return nil, ErrInvalidToken
	}

	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return nil, ErrInvalidToken
	}

	s := &Session{UserID: c.Subject, Email: c.Email, Role: c.Role}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, nil
}
