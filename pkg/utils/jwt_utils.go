package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityTokenTTL is fixed; tokens are never refreshed.
const IdentityTokenTTL = 7 * 24 * time.Hour

const tokenIssuer = "nightfly-backend"

var (
	ErrTokenSecretMissing = errors.New("identity token secret is not configured")
	ErrInvalidToken       = errors.New("invalid identity token")
)

// Claims binds a verified mobile number. No scopes or roles are carried.
type Claims struct {
	Mobile string `json:"mobile"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies identity tokens signed with a shared secret.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates a TokenService. An empty secret is accepted so the
// process can start; every Issue and Verify then fails with ErrTokenSecretMissing.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue creates a signed token for mobile expiring IdentityTokenTTL from now.
func (s *TokenService) Issue(mobile string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenSecretMissing
	}
	issuedAt := s.now()
	claims := &Claims{
		Mobile: mobile,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   mobile,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(IdentityTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign identity token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, algorithm and expiry. Every failure wraps ErrInvalidToken
// (or ErrTokenSecretMissing) so callers treat them alike.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrTokenSecretMissing
	}
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Mobile == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
