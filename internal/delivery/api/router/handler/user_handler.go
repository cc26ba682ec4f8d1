// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"oauthgate/config"
	apimiddleware "oauthgate/internal/delivery/api/middleware"
	"oauthgate/internal/delivery/api/response"
	deliverycontext "oauthgate/internal/delivery/context"
	"oauthgate/internal/domain/entity"
	domainerrors "oauthgate/internal/domain/errors"
	"oauthgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	refreshTokenCookie = "refreshToken"

	loginSuccessMessage = "User logged in sucessully"
)

// GoogleLoginRequest is the body of POST /api/v1/users/google-login.
type GoogleLoginRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required"`
	ProfilePic string `json:"profilePic" validate:"required"`
}

// UserResponse is the public view of a user. The refresh token is never included.
type UserResponse struct {
	ID               uuid.UUID `json:"_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	ProfilePic       string    `json:"profilePic"`
	IsGoogleVerified bool      `json:"isGoogleVerified"`
	IsVerified       bool      `json:"isVerified"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// GoogleLoginResponse is the data payload of a successful login.
type GoogleLoginResponse struct {
	LoggedInUser *UserResponse `json:"loggedInUser"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

func newUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		ProfilePic:       user.ProfilePic,
		IsGoogleVerified: user.IsGoogleVerified,
		IsVerified:       user.IsVerified,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	authUC    usecase.AuthUsecase
	profileUC usecase.ProfileUsecase
	cookie    config.CookieConfig
	now       func() time.Time
}

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	AuthUsecase    usecase.AuthUsecase
	ProfileUsecase usecase.ProfileUsecase
	Config         *config.Config
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		authUC:    params.AuthUsecase,
		profileUC: params.ProfileUsecase,
		cookie:    params.Config.Cookie,
		now:       time.Now,
	}
}

// GoogleLogin logs a Google identity in and sets the token cookies.
func (h *UserHandler) GoogleLogin(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WithCause(err)
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.GoogleLogin(c.Request().Context(), &usecase.GoogleLoginInput{
		Name:       req.Name,
		Email:      req.Email,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.tokenCookie(apimiddleware.AccessTokenCookie, output.Tokens.AccessToken))
	c.SetCookie(h.tokenCookie(refreshTokenCookie, output.Tokens.RefreshToken))

	return response.Success(c, http.StatusOK, GoogleLoginResponse{
		LoggedInUser: newUserResponse(output.User),
		AccessToken:  output.Tokens.AccessToken,
		RefreshToken: output.Tokens.RefreshToken,
	}, loginSuccessMessage)
}

// GetProfile greets the authenticated user.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.String(http.StatusOK, "Welcome "+user.Name)
}

// tokenCookie builds a cookie with the configured attributes.
// A non-positive max age yields a session cookie.
func (h *UserHandler) tokenCookie(name, value string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: h.cookie.HTTPOnly,
		Secure:   h.cookie.Secure,
	}

	if lifetime := h.cookie.Lifetime(); lifetime > 0 {
		cookie.MaxAge = int(lifetime / time.Second)
		cookie.Expires = h.now().Add(lifetime).UTC()
	}

	return cookie
}
