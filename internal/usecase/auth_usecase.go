// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"oauthgate/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// GoogleLoginInput is the identity resolved by the upstream Google integration.
type GoogleLoginInput struct {
	Name       string
	Email      string
	ProfilePic string
}

// --- Output DTOs ---

// LoginOutput returns the logged-in user together with the freshly issued tokens.
type LoginOutput struct {
	User   *entity.User
	Tokens *entity.TokenPair
}

// TokenIssuer issues an access/refresh pair for a user and persists the refresh token.
type TokenIssuer interface {
	IssueTokens(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error)
}

// AuthUsecase defines the login operations exposed to the delivery layer.
type AuthUsecase interface {
	// GoogleLogin finds or creates the user for a Google identity and issues tokens.
	GoogleLogin(ctx context.Context, input *GoogleLoginInput) (*LoginOutput, error)
}
