// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"oauthgate/config"
	"oauthgate/internal/domain/entity"
	"oauthgate/internal/domain/service"
	"oauthgate/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned for tokens that fail parsing, signature or expiry checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrWrongTokenType is returned when a refresh token is presented where an access token is expected.
	ErrWrongTokenType = errors.New("unexpected token type")
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	accessSecret  []byte        // Secret key for signing access tokens.
	refreshSecret []byte        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	now           func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.Token == nil || cfg.Token.AccessTTL <= 0 || cfg.Token.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     cfg.Token.AccessTTL,
		refreshTTL:    cfg.Token.RefreshTTL,
		now:           time.Now,
	}, nil
}

// GenerateAccessToken signs an access token carrying the user's id, email and name.
func (s *jwtService) GenerateAccessToken(user *entity.User) (string, error) {
	claims := s.newClaims(user.ID, entity.TokenTypeAccess, s.accessTTL)
	claims.Email = user.Email
	claims.Name = user.Name

	return s.sign(claims, s.accessSecret)
}

// GenerateRefreshToken signs a refresh token carrying the user's id only.
func (s *jwtService) GenerateRefreshToken(user *entity.User) (string, error) {
	claims := s.newClaims(user.ID, entity.TokenTypeRefresh, s.refreshTTL)

	return s.sign(claims, s.refreshSecret)
}

// ValidateAccessToken verifies the signature and expiry of an access token.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) {
			return s.accessSecret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if claims.Type != entity.TokenTypeAccess {
		return nil, ErrWrongTokenType
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	claims.UserID = userID

	return claims, nil
}

func (s *jwtService) newClaims(userID uuid.UUID, tokenType string, ttl time.Duration) *service.Claims {
	now := s.now()

	return &service.Claims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func (s *jwtService) sign(claims *service.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}
