// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"oauthgate/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when the unique email index rejects an insert.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository defines the operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by exact email match.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. ID and timestamps are filled in on the entity.
	Create(ctx context.Context, user *entity.User) error

	// UpdateGoogleProfile writes name, profile_pic and is_google_verified only, and
	// sets the entity's UpdatedAt to the stored value.
	UpdateGoogleProfile(ctx context.Context, user *entity.User) error

	// UpdateRefreshToken writes the refresh_token column only.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, refreshToken string) error
}
