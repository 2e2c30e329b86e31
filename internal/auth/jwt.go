package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rsimmons/yukawa/internal/domain"
)

// JWTManager issues and validates HS256 access tokens whose subject is the
// learner's user ID. Sign-in itself happens elsewhere.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

// GenerateAccessToken creates a signed token for userID valid for the
// configured TTL.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return m.GenerateAccessTokenTTL(userID, m.accessTTL)
}

// GenerateAccessTokenTTL is GenerateAccessToken with an explicit lifetime.
func (m *JWTManager) GenerateAccessTokenTTL(userID uuid.UUID, ttl time.Duration) (string, error) {
	if userID == uuid.Nil {
		return "", fmt.Errorf("user id: %w", domain.ErrValidation)
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive (got %s): %w", ttl, domain.ErrValidation)
	}

	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    m.issuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken parses and validates a token. Every failure wraps
// domain.ErrUnauthorized.
func (m *JWTManager) ValidateAccessToken(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, fmt.Errorf("token is empty: %w", domain.ErrUnauthorized)
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", errors.Join(domain.ErrUnauthorized, err))
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return Identity{}, fmt.Errorf("invalid subject %q: %w", claims.Subject, domain.ErrUnauthorized)
	}

	id := Identity{UserID: userID, ExpiresAt: claims.ExpiresAt.Time}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	return id, nil
}

// ValidateToken adapts ValidateAccessToken to the HTTP auth middleware.
func (m *JWTManager) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	id, err := m.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, err
	}
	return id.UserID, nil
}
