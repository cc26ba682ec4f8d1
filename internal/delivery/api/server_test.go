package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"oauthgate/config"
	apimiddleware "oauthgate/internal/delivery/api/middleware"
	"oauthgate/internal/delivery/api/router"
	"oauthgate/internal/delivery/api/router/handler"
	deliverycontext "oauthgate/internal/delivery/context"
	"oauthgate/internal/domain/entity"
	domainerrors "oauthgate/internal/domain/errors"
	"oauthgate/internal/infra/auth"
	"oauthgate/internal/infra/metrics"
	"oauthgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthUsecase struct {
	output *usecase.LoginOutput
	err    error
}

func (s *stubAuthUsecase) GoogleLogin(context.Context, *usecase.GoogleLoginInput) (*usecase.LoginOutput, error) {
	return s.output, s.err
}

type stubProfileUsecase struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubProfileUsecase) GetProfile(_ context.Context, userID uuid.UUID) (*entity.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	return user, nil
}

type testServer struct {
	echo    *echo.Echo
	authUC  *stubAuthUsecase
	profile *stubProfileUsecase
	cfg     *config.Config
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "access-secret", Refresh: "refresh-secret"},
		Token:     &config.TokenConfig{AccessTTL: 15 * time.Minute, RefreshTTL: 24 * time.Hour},
		Cookie:    config.CookieConfig{HTTPOnly: true, Secure: false, MaxAge: 60000},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"

	return cfg
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := newTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	authUC := &stubAuthUsecase{}
	profileUC := &stubProfileUsecase{users: map[uuid.UUID]*entity.User{}}

	reg := metrics.NewRegistry()
	metrics.NewCollector(reg)

	e := newEcho(cfg, logger)
	router.NewRouter(router.RouterParams{
		UserHandler: handler.NewUserHandler(handler.UserHandlerParams{
			AuthUsecase:    authUC,
			ProfileUsecase: profileUC,
			Config:         cfg,
		}),
		HealthHandler:  &handler.HealthHandler{},
		AuthMiddleware: apimiddleware.NewAuthMiddleware(tokenSvc),
		Gatherer:       reg,
	}).RegisterRoutes(e)

	return &testServer{echo: e, authUC: authUC, profile: profileUC, cfg: cfg}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

func loginRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/google-login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func TestServer_GoogleLogin_Success(t *testing.T) {
	srv := newTestServer(t)
	userID := uuid.New()
	srv.authUC.output = &usecase.LoginOutput{
		User:   &entity.User{ID: userID, Name: "Ada", Email: "ada@example.com", IsGoogleVerified: true, IsVerified: true},
		Tokens: &entity.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
	}

	req := loginRequest(`{"name":"Ada","email":"ada@example.com","profilePic":"p.png"}`)
	req.Header.Set(deliverycontext.HeaderXRequestID, "trace-1")
	rec := srv.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trace-1", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Len(t, rec.Result().Cookies(), 2)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User logged in sucessully", body["message"])
	assert.Equal(t, true, body["success"])
}

func TestServer_GoogleLogin_ErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "missing field",
			body:       `{"name":"Ada","email":"ada@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
			wantMsg:    "Please provide all the required fields",
		},
		{
			name:       "existing non google account",
			body:       `{"name":"Ada","email":"ada@example.com","profilePic":"p.png"}`,
			err:        domainerrors.ErrAccountAlreadyExists,
			wantStatus: http.StatusConflict,
			wantCode:   "ACCOUNT_ALREADY_EXISTS",
			wantMsg:    "An account with this email already exists.",
		},
		{
			name:       "token issuance",
			body:       `{"name":"Ada","email":"ada@example.com","profilePic":"p.png"}`,
			err:        domainerrors.ErrTokenIssuanceFailed.WithCause(assert.AnError),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "TOKEN_ISSUANCE_FAILED",
			wantMsg:    "Something went wrong while generating refresh and access token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			srv.authUC.err = tt.err

			rec := srv.do(loginRequest(tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, rec.Result().Cookies())

			var body struct {
				StatusCode int    `json:"statusCode"`
				Message    string `json:"message"`
				Success    bool   `json:"success"`
				Error      struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.StatusCode)
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestServer_Profile(t *testing.T) {
	srv := newTestServer(t)
	user := &entity.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	srv.profile.users[user.ID] = user

	tokenSvc, err := auth.NewJWTService(srv.cfg)
	require.NoError(t, err)
	accessToken, err := tokenSvc.GenerateAccessToken(user)
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
		req.AddCookie(&http.Cookie{Name: apimiddleware.AccessTokenCookie, Value: accessToken})

		rec := srv.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Welcome Ada", rec.Body.String())
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)

		rec := srv.do(req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := srv.do(httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)
	})
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}
