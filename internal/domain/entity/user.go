// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the local account that a Google identity is mapped onto.
// Email is the natural key: at most one user exists per address.
type User struct {
	ID               uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Name             string    // Display name as reported by the identity provider.
	Email            string    // Unique, exact-match lookup key.
	ProfilePic       string    // URL of the profile picture.
	IsGoogleVerified bool      // Set once the account has logged in through Google.
	IsVerified       bool      // General verification flag.
	RefreshToken     *string   // The single refresh token currently issued for this user.
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GoogleProfile is the identity payload handed over by the upstream Google integration.
// It is trusted as-is.
type GoogleProfile struct {
	Name       string
	Email      string
	ProfilePic string
}

// ApplyGoogleProfile copies the provider-owned fields onto the user and marks it Google-verified.
func (u *User) ApplyGoogleProfile(profile GoogleProfile) {
	u.Name = profile.Name
	u.ProfilePic = profile.ProfilePic
	u.IsGoogleVerified = true
}
