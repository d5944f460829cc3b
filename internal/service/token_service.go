package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/crewdesk/crewdesk/internal/config"
	"github.com/crewdesk/crewdesk/internal/domain"
)

// DefaultTokenTTL is used when the configured TTL is missing or non-positive.
const DefaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies signed access tokens. It is stateless:
// there is no revocation list, so a token stays valid until its expiry even
// if the underlying account changes. Callers that need faster invalidation
// shorten the configured TTL.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a new token service
func NewTokenService(cfg config.JWTConfig) *TokenService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed HS256 token carrying the user's identity claims.
// A non-positive ttl falls back to the service default.
func (s *TokenService) Issue(user *domain.User, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}

	now := time.Now()
	claims := domain.AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string, returning its claims.
// Failures map onto domain.ErrTokenMalformed, domain.ErrTokenSignature and
// domain.ErrTokenExpired; a token is accepted only when all checks pass.
func (s *TokenService) Verify(tokenString string) (*domain.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenSignature
		}
		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, domain.ErrTokenSignature):
			return nil, domain.ErrTokenSignature
		default:
			return nil, domain.ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*domain.AccessClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenMalformed
	}

	return claims, nil
}
