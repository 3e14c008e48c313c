package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/dealer-service/internal/auth"
	"github.com/spec-kit/dealer-service/internal/domain"
	"github.com/spec-kit/dealer-service/internal/events"
	"github.com/spec-kit/dealer-service/internal/ratelimit"
	"github.com/spec-kit/dealer-service/internal/repository"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

// OTPService generates, verifies and consumes one-time codes scoped to a
// (user, purpose) pair. Codes are stored hashed with a fixed lifetime;
// expiry is checked lazily at verify/consume time, never swept.
type OTPService struct {
	codes      repository.OTPRepository
	limiter    *ratelimit.ResendLimiter
	dispatcher events.Dispatcher
	logger     *zap.Logger
	ttl        time.Duration
	now        func() time.Time
	newCode    func() (string, error)
}

// OTPDependencies encapsulates collaborator requirements. Now and NewCode
// default to the UTC wall clock and a crypto/rand 6-digit code when nil.
type OTPDependencies struct {
	Codes      repository.OTPRepository
	Limiter    *ratelimit.ResendLimiter
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	TTL        time.Duration
	Now        func() time.Time
	NewCode    func() (string, error)
}

// NewOTPService builds the service.
func NewOTPService(deps OTPDependencies) *OTPService {
	svc := &OTPService{
		codes:      deps.Codes,
		limiter:    deps.Limiter,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		ttl:        deps.TTL,
		now:        deps.Now,
		newCode:    deps.NewCode,
	}
	if svc.ttl <= 0 {
		svc.ttl = 5 * time.Minute
	}
	if svc.now == nil {
		svc.now = func() time.Time { return time.Now().UTC() }
	}
	if svc.newCode == nil {
		svc.newCode = NewNumericCode
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// NewNumericCode draws a 6-digit code directly in [100000, 999999], so a
// leading zero can never occur.
func NewNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// Generate stores the hash of a fresh code and returns the plaintext to
// the caller for out-of-band delivery. Multiple outstanding codes per
// (user, purpose) are allowed; hash collisions across rows are harmless
// because lookup is scoped by (user, purpose, hash).
func (s *OTPService) Generate(ctx context.Context, userID int64, purpose string) (string, error) {
	allowed, err := s.limiter.Allow(ctx, userID, purpose)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	if !allowed {
		return "", apperrors.NewTooManyRequests("a code was issued recently; wait before requesting another")
	}

	code, err := s.newCode()
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	entry := &domain.OneTimeCode{
		UserID:    userID,
		Purpose:   purpose,
		CodeHash:  auth.HashCredential(code),
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.codes.Create(ctx, entry); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	s.logger.Info("one-time code generated",
		zap.Int64("user_id", userID),
		zap.String("purpose", purpose),
		zap.Time("expires_at", entry.ExpiresAt))

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventOTPGenerated, userID, events.OTPGeneratedPayload{
			Purpose:   purpose,
			Code:      code,
			ExpiresAt: entry.ExpiresAt,
		}))
	}

	return code, nil
}

// Verify reports whether a still-valid matching code exists. It never
// mutates state, so callers may verify repeatedly.
func (s *OTPService) Verify(ctx context.Context, userID int64, purpose, code string) (bool, error) {
	entry, err := s.codes.FindActive(ctx, userID, purpose, auth.HashCredential(code))
	if err != nil {
		if repository.IsNotFound(err) {
			s.logger.Warn("code verification failed",
				zap.Int64("user_id", userID),
				zap.String("purpose", purpose),
				zap.String("reason", "not found or already consumed"))
			return false, nil
		}
		return false, apperrors.NewInternalError(err)
	}

	if entry.ExpiresAt.Before(s.now()) {
		s.logger.Warn("code verification failed",
			zap.Int64("user_id", userID),
			zap.String("purpose", purpose),
			zap.String("reason", "expired"))
		return false, nil
	}

	return true, nil
}

// Consume stamps the matching code as used. The lookup and the stamp run
// as one conditional statement in the store, so concurrent consumers of
// the same code cannot both succeed.
func (s *OTPService) Consume(ctx context.Context, userID int64, purpose, code string) (bool, error) {
	consumed, err := s.codes.Consume(ctx, userID, purpose, auth.HashCredential(code), s.now())
	if err != nil {
		return false, apperrors.NewInternalError(err)
	}
	if !consumed {
		s.logger.Warn("code consumption failed",
			zap.Int64("user_id", userID),
			zap.String("purpose", purpose))
		return false, nil
	}

	s.logger.Info("one-time code consumed",
		zap.Int64("user_id", userID),
		zap.String("purpose", purpose))
	return true, nil
}
