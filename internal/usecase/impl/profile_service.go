package impl

import (
	"context"
	"log/slog"

	deliverycontext "oauthgate/internal/delivery/context"
	"oauthgate/internal/domain/entity"
	domainerrors "oauthgate/internal/domain/errors"
	"oauthgate/internal/domain/repository"
	"oauthgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type profileService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// GetProfile returns the user behind an authenticated request.
// A token whose user no longer exists is treated as unauthorized.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUnauthorized
	}
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Error("Failed to load profile", slog.Any("userID", userID), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WithCause(err)
	}

	return user, nil
}
