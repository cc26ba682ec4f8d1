package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"oauthgate/internal/domain/entity"
	"oauthgate/internal/domain/repository"
	"oauthgate/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryUserRepo is an in-memory UserRepository keyed by id with a unique email index.
type memoryUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]uuid.UUID

	findErr          error
	createErr        error
	updateProfileErr error
	updateTokenErr   error

	createCalls        int
	updateProfileCalls int
	updateTokenCalls   int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *memoryUserRepo) seed(user *entity.User) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	return user
}

func (r *memoryUserRepo) get(id uuid.UUID) *entity.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil
	}
	cp := *user

	return &cp
}

func (r *memoryUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.byID)
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}

	user := r.get(id)
	if user == nil {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}

	r.mu.Lock()
	id, ok := r.byEmail[email]
	r.mu.Unlock()
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return r.get(id), nil
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}

	now := time.Now()
	user.ID = uuid.New()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	return nil
}

func (r *memoryUserRepo) UpdateGoogleProfile(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.updateProfileCalls++
	if r.updateProfileErr != nil {
		return r.updateProfileErr
	}

	stored, ok := r.byID[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	stored.Name = user.Name
	stored.ProfilePic = user.ProfilePic
	stored.IsGoogleVerified = user.IsGoogleVerified
	stored.UpdatedAt = time.Now()
	user.UpdatedAt = stored.UpdatedAt

	return nil
}

func (r *memoryUserRepo) UpdateRefreshToken(_ context.Context, id uuid.UUID, refreshToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.updateTokenCalls++
	if r.updateTokenErr != nil {
		return r.updateTokenErr
	}

	stored, ok := r.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	token := refreshToken
	stored.RefreshToken = &token

	return nil
}

// memoryTxManager runs the callback directly against the shared repository.
type memoryTxManager struct {
	repo     *memoryUserRepo
	begunErr error
	calls    int
}

func (tm *memoryTxManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	tm.calls++
	if tm.begunErr != nil {
		return tm.begunErr
	}

	return fn(tm)
}

func (tm *memoryTxManager) UserRepo() repository.UserRepository {
	return tm.repo
}

// mockTokenService is a testify mock of service.TokenService.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(user *entity.User) (string, error) {
	args := m.Called(user)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) GenerateRefreshToken(user *entity.User) (string, error) {
	args := m.Called(user)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)

	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

// countingRecorder records login outcomes.
type countingRecorder struct {
	mu       sync.Mutex
	outcomes []string
	issued   int
}

func (r *countingRecorder) RecordLogin(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outcomes = append(r.outcomes, outcome)
}

func (r *countingRecorder) RecordTokenIssued() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.issued++
}
