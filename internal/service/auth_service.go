package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/dealer-service/internal/auth"
	"github.com/spec-kit/dealer-service/internal/domain"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

// AuthService coordinates the two-phase credential exchange: password
// login issues a one-time code, never a token; redeeming the code mints
// the bearer token.
type AuthService struct {
	users  *UserService
	otp    *OTPService
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(users *UserService, otp *OTPService, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, otp: otp, tokens: tokens, logger: logger}
}

// Register creates a Customer account and issues a registration code.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperrors.NewConflict("user with this email already exists", nil)
	}

	user, err := s.users.Create(ctx, email, password, domain.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	if _, err := s.otp.Generate(ctx, user.ID, domain.OTPPurposeRegister); err != nil {
		return nil, "", err
	}

	s.logger.Info("registration initiated", zap.String("email", email))
	return user, domain.OTPPurposeRegister, nil
}

// Login verifies the password and issues a login code. Failure is
// reported uniformly so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !s.users.VerifyPassword(user, password) {
		return nil, "", apperrors.NewUnauthorized("invalid email or password")
	}

	if _, err := s.otp.Generate(ctx, user.ID, domain.OTPPurposeLogin); err != nil {
		return nil, "", err
	}

	s.logger.Info("login initiated", zap.String("email", email))
	return user, domain.OTPPurposeLogin, nil
}

// VerifyOTP redeems a one-time code for a bearer token. All code failures
// surface as the same unauthorized error; the cause is only logged.
func (s *AuthService) VerifyOTP(ctx context.Context, userID int64, purpose, code string) (string, time.Time, *domain.User, error) {
	valid, err := s.otp.Verify(ctx, userID, purpose, code)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	if !valid {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid or expired code")
	}

	consumed, err := s.otp.Consume(ctx, userID, purpose, code)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	if !consumed {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid or expired code")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	if user == nil {
		return "", time.Time{}, nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", time.Time{}, nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("code verified",
		zap.Int64("user_id", user.ID),
		zap.String("purpose", purpose))
	return token, expiresAt, user, nil
}
