// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken = errors.New("missing session token")
	ErrInvalidToken = errors.New("invalid session token")
)

// Identity is the caller resolved from a verified token.
type Identity struct {
	Username string
	UserID   uint
}

type Claims struct {
	Username string `json:"username"`
	UserID   uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// Signer issues HS256 tokens with its current secret and accepts tokens
// signed with the current or any previous secret.
type Signer struct {
	secrets [][]byte
	ttl     time.Duration
	now     func() time.Time
}

// NewSigner creates a Signer. A zero ttl issues tokens without an expiry.
func NewSigner(secret string, previous []string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("auth secret is empty")
	}
	secrets := [][]byte{[]byte(secret)}
	for _, p := range previous {
		if p != "" {
			secrets = append(secrets, []byte(p))
		}
	}
	return &Signer{secrets: secrets, ttl: ttl, now: time.Now}, nil
}

func (s *Signer) Issue(identity Identity) (string, error) {
	now := s.now()
	claims := Claims{
		Username: identity.Username,
		UserID:   identity.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secrets[0])
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Signer) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrMissingToken
	}
	for _, secret := range s.secrets {
		secret := secret
		var claims Claims
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
		if err == nil && token.Valid {
			if claims.UserID == 0 || claims.Username == "" {
				return Identity{}, ErrInvalidToken
			}
			return Identity{Username: claims.Username, UserID: claims.UserID}, nil
		}
		if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			break
		}
	}
	return Identity{}, ErrInvalidToken
}
