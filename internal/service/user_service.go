package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/dealer-service/internal/auth"
	"github.com/spec-kit/dealer-service/internal/domain"
	"github.com/spec-kit/dealer-service/internal/repository"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

// UserService covers account lookup, creation and password verification.
type UserService struct {
	users  repository.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService builds the service. now defaults to the UTC wall clock.
func NewUserService(users repository.UserRepository, logger *zap.Logger, now func() time.Time) *UserService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, logger: logger, now: now}
}

// FindByEmail looks up an account by exact email match. Absence is a
// normal empty result, not an error.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// FindByID looks up an account by id; absence yields a nil user.
func (s *UserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// Create persists a new account with a hashed password. Email uniqueness
// is the caller's concern; the store's unique constraint is the backstop.
func (s *UserService) Create(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	user := &domain.User{
		Email:        email,
		PasswordHash: auth.HashCredential(password),
		Role:         role,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user created",
		zap.String("email", email),
		zap.String("role", string(role)))
	return user, nil
}

// VerifyPassword recomputes the hash of the supplied password and compares
// it to the stored one.
func (s *UserService) VerifyPassword(user *domain.User, password string) bool {
	return auth.VerifyCredential(user.PasswordHash, password)
}

// ListCustomers returns every Customer-role account ordered by creation.
func (s *UserService) ListCustomers(ctx context.Context) ([]domain.User, error) {
	customers, err := s.users.ListByRole(ctx, domain.RoleCustomer)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return customers, nil
}
