package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"oauthgate/config"
	"oauthgate/internal/delivery/api/validator"
	deliverycontext "oauthgate/internal/delivery/context"
	"oauthgate/internal/domain/entity"
	domainerrors "oauthgate/internal/domain/errors"
	"oauthgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)

	out, _ := args.Get(0).(*usecase.LoginOutput)

	return out, args.Error(1)
}

type mockProfileUsecase struct {
	mock.Mock
}

func (m *mockProfileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)

	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestHandler(cookie config.CookieConfig) (*UserHandler, *mockAuthUsecase, *mockProfileUsecase) {
	authUC := &mockAuthUsecase{}
	profileUC := &mockProfileUsecase{}

	h := NewUserHandler(UserHandlerParams{
		AuthUsecase:    authUC,
		ProfileUsecase: profileUC,
		Config:         &config.Config{Cookie: cookie},
	})
	h.now = func() time.Time { return fixedNow }

	return h, authUC, profileUC
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()

	return e
}

func newJSONRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/google-login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}

	return nil
}

func TestUserHandler_GoogleLogin_Success(t *testing.T) {
	h, authUC, _ := newTestHandler(config.CookieConfig{HTTPOnly: true, Secure: true, MaxAge: 86400000})
	user := &entity.User{
		ID:               uuid.New(),
		Name:             "Ada",
		Email:            "ada@example.com",
		ProfilePic:       "p.png",
		IsGoogleVerified: true,
		IsVerified:       true,
	}
	refresh := "refresh-1"
	user.RefreshToken = &refresh

	authUC.On("GoogleLogin", mock.Anything, &usecase.GoogleLoginInput{
		Name:       "Ada",
		Email:      "ada@example.com",
		ProfilePic: "p.png",
	}).Return(&usecase.LoginOutput{
		User:   user,
		Tokens: &entity.TokenPair{AccessToken: "access-1", RefreshToken: refresh},
	}, nil)

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(newJSONRequest(`{"name":"Ada","email":"ada@example.com","profilePic":"p.png"}`), rec)

	require.NoError(t, h.GoogleLogin(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
		Success    bool   `json:"success"`
		Data       struct {
			LoggedInUser map[string]any `json:"loggedInUser"`
			AccessToken  string         `json:"accessToken"`
			RefreshToken string         `json:"refreshToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 200, body.StatusCode)
	assert.Equal(t, "User logged in sucessully", body.Message)
	assert.True(t, body.Success)
	assert.Equal(t, "access-1", body.Data.AccessToken)
	assert.Equal(t, "refresh-1", body.Data.RefreshToken)
	assert.Equal(t, user.ID.String(), body.Data.LoggedInUser["_id"])
	assert.Equal(t, true, body.Data.LoggedInUser["isGoogleVerified"])
	assert.NotContains(t, body.Data.LoggedInUser, "refreshToken")

	cookies := rec.Result().Cookies()
	access := findCookie(cookies, "accessToken")
	require.NotNil(t, access)
	assert.Equal(t, "access-1", access.Value)
	assert.Equal(t, "/", access.Path)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, 86400, access.MaxAge)
	assert.True(t, fixedNow.Add(24*time.Hour).Equal(access.Expires))

	refreshCookie := findCookie(cookies, "refreshToken")
	require.NotNil(t, refreshCookie)
	assert.Equal(t, "refresh-1", refreshCookie.Value)
	assert.Equal(t, 86400, refreshCookie.MaxAge)

	authUC.AssertExpectations(t)
}

func TestUserHandler_GoogleLogin_CookieFlagsFollowConfig(t *testing.T) {
	h, authUC, _ := newTestHandler(config.CookieConfig{HTTPOnly: false, Secure: false, MaxAge: 1500})
	authUC.On("GoogleLogin", mock.Anything, mock.Anything).Return(&usecase.LoginOutput{
		User:   &entity.User{ID: uuid.New()},
		Tokens: &entity.TokenPair{AccessToken: "a", RefreshToken: "r"},
	}, nil)

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(newJSONRequest(`{"name":"Ada","email":"ada@example.com","profilePic":"p.png"}`), rec)

	require.NoError(t, h.GoogleLogin(c))

	for _, name := range []string{"accessToken", "refreshToken"} {
		cookie := findCookie(rec.Result().Cookies(), name)
		require.NotNil(t, cookie, name)
		assert.False(t, cookie.HttpOnly)
		assert.False(t, cookie.Secure)
		// 1500ms rounds down to one second
		assert.Equal(t, 1, cookie.MaxAge)
	}
}

func TestUserHandler_TokenCookie_SessionWhenNoMaxAge(t *testing.T) {
	h, _, _ := newTestHandler(config.CookieConfig{HTTPOnly: true})

	cookie := h.tokenCookie("accessToken", "v")

	assert.Zero(t, cookie.MaxAge)
	assert.True(t, cookie.Expires.IsZero())
	assert.True(t, cookie.HttpOnly)
}

func TestUserHandler_GoogleLogin_MissingFields(t *testing.T) {
	bodies := map[string]string{
		"no name":      `{"email":"ada@example.com","profilePic":"p.png"}`,
		"empty email":  `{"name":"Ada","email":"","profilePic":"p.png"}`,
		"no picture":   `{"name":"Ada","email":"ada@example.com"}`,
		"empty object": `{}`,
		"malformed":    `{"name":`,
		"wrong type":   `{"name":1,"email":"ada@example.com","profilePic":"p.png"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			h, authUC, _ := newTestHandler(config.CookieConfig{MaxAge: 1000})

			e := newTestEcho()
			rec := httptest.NewRecorder()
			c := e.NewContext(newJSONRequest(body), rec)

			err := h.GoogleLogin(c)

			require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			assert.Empty(t, rec.Result().Cookies())
			authUC.AssertNotCalled(t, "GoogleLogin", mock.Anything, mock.Anything)
		})
	}
}

func TestUserHandler_GoogleLogin_UsecaseErrorSetsNoCookies(t *testing.T) {
	h, authUC, _ := newTestHandler(config.CookieConfig{MaxAge: 1000})
	authUC.On("GoogleLogin", mock.Anything, mock.Anything).Return(nil, domainerrors.ErrAccountAlreadyExists)

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(newJSONRequest(`{"name":"Ada","email":"ada@example.com","profilePic":"p.png"}`), rec)

	err := h.GoogleLogin(c)

	require.ErrorIs(t, err, domainerrors.ErrAccountAlreadyExists)
	assert.Empty(t, rec.Result().Cookies())
}

func TestUserHandler_GetProfile(t *testing.T) {
	h, _, profileUC := newTestHandler(config.CookieConfig{})
	userID := uuid.New()
	profileUC.On("GetProfile", mock.Anything, userID).Return(&entity.User{ID: userID, Name: "Ada"}, nil)

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil), rec)
	deliverycontext.SetUserID(c, userID)

	require.NoError(t, h.GetProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome Ada", rec.Body.String())
}

func TestUserHandler_GetProfile_RequiresUser(t *testing.T) {
	h, _, profileUC := newTestHandler(config.CookieConfig{})

	e := newTestEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil), httptest.NewRecorder())

	assert.ErrorIs(t, h.GetProfile(c), domainerrors.ErrUnauthorized)
	profileUC.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}
