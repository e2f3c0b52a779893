// Package auth issues and verifies the signed session tokens handed out on
// register and login. A token only proves who signed it; whether the session
// is still alive is decided by the user's active token list.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	Access string `json:"access"`
	jwt.RegisteredClaims
}

// UserID is the subject the token was issued to.
func (c *Claims) UserID() string {
	return c.Subject
}

type TokenService struct {
	key []byte
	now func() time.Time
}

func NewTokenService(key []byte) *TokenService {
	return &TokenService{key: key, now: time.Now}
}

// Issue signs a token for userID. No expiry is set: sessions end when the
// token is removed from the user's list.
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("issue token: empty user id")
	}
	claims := Claims{
		Access: domain.AccessAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and payload shape. Every failure is reported as
// domain.ErrTokenInvalid.
func (s *TokenService) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Subject == "" || claims.Access != domain.AccessAuth {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}
