package middleware

import (
	"strings"

	deliverycontext "oauthgate/internal/delivery/context"
	domainerrors "oauthgate/internal/domain/errors"
	"oauthgate/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AccessTokenCookie is the cookie the login handler stores the access token in.
const AccessTokenCookie = "accessToken"

// AuthMiddleware authenticates requests carrying an access token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the access token from the accessToken cookie or a Bearer header
// and stores the user ID on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractAccessToken(c)
		if tokenString == "" {
			return domainerrors.ErrUnauthorized
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthorized.WithCause(err)
		}

		deliverycontext.SetUserID(c, claims.UserID)

		return next(c)
	}
}

func extractAccessToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}
