package service

import (
	"oauthgate/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the JWT tokens.
// Email and Name are only present on access tokens.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email,omitempty"`
	Name   string    `json:"name,omitempty"`
	Type   string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the access and refresh JWTs.
type TokenService interface {
	// GenerateAccessToken signs a short-lived token carrying the user's identity.
	GenerateAccessToken(user *entity.User) (string, error)

	// GenerateRefreshToken signs a long-lived token carrying only the user id.
	GenerateRefreshToken(user *entity.User) (string, error)

	// ValidateAccessToken parses an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*Claims, error)
}
