package impl

import (
	"context"
	"log/slog"

	deliverycontext "oauthgate/internal/delivery/context"
	"oauthgate/internal/domain/entity"
	domainerrors "oauthgate/internal/domain/errors"
	"oauthgate/internal/domain/repository"
	"oauthgate/internal/domain/service"
	"oauthgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tokenIssuer implements the TokenIssuer interface.
type tokenIssuer struct {
	txManager    repository.TransactionManager
	tokenService service.TokenService
	recorder     service.LoginRecorder
	logger       *slog.Logger
}

// TokenIssuerParams holds dependencies for the token issuer, injected by Fx.
type TokenIssuerParams struct {
	fx.In

	TxManager    repository.TransactionManager
	TokenService service.TokenService
	Recorder     service.LoginRecorder
	Logger       *slog.Logger
}

// NewTokenIssuer is the constructor for tokenIssuer.
func NewTokenIssuer(params TokenIssuerParams) usecase.TokenIssuer {
	return &tokenIssuer{
		txManager:    params.TxManager,
		tokenService: params.TokenService,
		recorder:     params.Recorder,
		logger:       params.Logger,
	}
}

func (srv *tokenIssuer) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// IssueTokens loads the user, signs a new token pair and stores the refresh token on the user row.
// Every failure is reported as ErrTokenIssuanceFailed with the cause attached.
func (srv *tokenIssuer) IssueTokens(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error) {
	var pair *entity.TokenPair

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to load user")
		}

		accessToken, err := srv.tokenService.GenerateAccessToken(user)
		if err != nil {
			return errors.Wrap(err, "failed to generate access token")
		}

		refreshToken, err := srv.tokenService.GenerateRefreshToken(user)
		if err != nil {
			return errors.Wrap(err, "failed to generate refresh token")
		}

		if err := userRepo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
			return errors.Wrap(err, "failed to store refresh token")
		}

		pair = &entity.TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to issue tokens", slog.Any("userID", userID), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssuanceFailed.WithCause(err)
	}

	if srv.recorder != nil {
		srv.recorder.RecordTokenIssued()
	}

	return pair, nil
}
