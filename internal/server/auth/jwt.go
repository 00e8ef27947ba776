// Package auth issues and validates session tokens, hashes passwords, and
// carries the authenticated user id through request contexts.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the standard registered claims plus the
// owning user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenIssuer mints and verifies HS256 tokens with a process-wide key.
// A zero validity issues tokens without an expiry.
type TokenIssuer struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

func NewTokenIssuer(secretKey []byte, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{secretKey: secretKey, validity: validity, now: time.Now}
}

// Issue returns a signed token bound to userID.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}

	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	if i.validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.validity))
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate resolves a token to its user id. Every failure wraps
// common.ErrInvalidToken; expired tokens additionally wrap
// common.ErrTokenExpired.
func (i *TokenIssuer) Validate(tokenString string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrMissingToken)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
