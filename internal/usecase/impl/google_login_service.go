// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "oauthgate/internal/delivery/context"
	"oauthgate/internal/domain/entity"
	domainerrors "oauthgate/internal/domain/errors"
	"oauthgate/internal/domain/repository"
	"oauthgate/internal/domain/service"
	"oauthgate/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// googleLoginService implements the AuthUsecase interface.
type googleLoginService struct {
	userRepo    repository.UserRepository
	tokenIssuer usecase.TokenIssuer
	recorder    service.LoginRecorder
	logger      *slog.Logger
	now         func() time.Time
}

// GoogleLoginServiceParams holds dependencies for the Google login service, injected by Fx.
type GoogleLoginServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	TokenIssuer usecase.TokenIssuer
	Recorder    service.LoginRecorder
	Logger      *slog.Logger
}

// NewGoogleLoginService is the constructor for googleLoginService.
func NewGoogleLoginService(params GoogleLoginServiceParams) usecase.AuthUsecase {
	return &googleLoginService{
		userRepo:    params.UserRepo,
		tokenIssuer: params.TokenIssuer,
		recorder:    params.Recorder,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *googleLoginService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GoogleLogin finds the user by email, creates or refreshes it from the Google profile, and issues tokens.
func (srv *googleLoginService) GoogleLogin(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.LoginOutput, error) {
	start := srv.now()

	output, outcome, err := srv.login(ctx, input)
	if srv.recorder != nil {
		srv.recorder.RecordLogin(outcome, srv.now().Sub(start))
	}

	return output, err
}

func (srv *googleLoginService) login(ctx context.Context, input *usecase.GoogleLoginInput) (*usecase.LoginOutput, string, error) {
	if input == nil || input.Name == "" || input.Email == "" || input.ProfilePic == "" {
		return nil, service.LoginOutcomeInvalid, domainerrors.ErrValidationFailed
	}

	profile := entity.GoogleProfile{
		Name:       input.Name,
		Email:      input.Email,
		ProfilePic: input.ProfilePic,
	}

	user, err := srv.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Error("Failed to look up user by email", slog.String("email", profile.Email), slog.Any("error", err))

		return nil, service.LoginOutcomeError, domainerrors.ErrInternalError.WithCause(err)
	}

	var outcome string
	if user != nil {
		if !user.IsGoogleVerified {
			srv.log(ctx).Info("Google login rejected for existing non-Google account", slog.Any("userID", user.ID))

			return nil, service.LoginOutcomeConflict, domainerrors.ErrAccountAlreadyExists
		}

		if err := srv.updateExisting(ctx, user, profile); err != nil {
			return nil, service.LoginOutcomeError, err
		}
		outcome = service.LoginOutcomeUpdated
	} else {
		user, err = srv.createFromProfile(ctx, profile)
		if err != nil {
			return nil, service.LoginOutcomeError, err
		}
		outcome = service.LoginOutcomeCreated
	}

	tokens, err := srv.tokenIssuer.IssueTokens(ctx, user.ID)
	if err != nil {
		return nil, service.LoginOutcomeError, err
	}
	user.RefreshToken = &tokens.RefreshToken

	srv.log(ctx).Debug("Google login completed", slog.Any("userID", user.ID), slog.String("outcome", outcome))

	return &usecase.LoginOutput{
		User:   user,
		Tokens: tokens,
	}, outcome, nil
}

func (srv *googleLoginService) updateExisting(ctx context.Context, user *entity.User, profile entity.GoogleProfile) error {
	user.ApplyGoogleProfile(profile)

	if err := srv.userRepo.UpdateGoogleProfile(ctx, user); err != nil {
		srv.log(ctx).Error("Failed to update user from Google profile", slog.Any("userID", user.ID), slog.Any("error", err))

		return domainerrors.ErrUserUpdateFailed.WithCause(err)
	}

	return nil
}

func (srv *googleLoginService) createFromProfile(ctx context.Context, profile entity.GoogleProfile) (*entity.User, error) {
	user := &entity.User{
		Email:      profile.Email,
		IsVerified: true,
	}
	user.ApplyGoogleProfile(profile)

	if err := srv.userRepo.Create(ctx, user); err != nil {
		srv.log(ctx).Error("Failed to create user from Google profile", slog.String("email", profile.Email), slog.Any("error", err))

		return nil, domainerrors.ErrUserCreationFailed.WithCause(err)
	}

	return user, nil
}
