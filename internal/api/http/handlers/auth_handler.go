package handlers

import (
	"context"
	"net/http"
	"net/mail"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dealer-service/internal/api/dto"
	"github.com/spec-kit/dealer-service/internal/domain"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

// AuthFlow is the two-phase credential exchange consumed by this handler.
type AuthFlow interface {
	Register(ctx context.Context, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	VerifyOTP(ctx context.Context, userID int64, purpose, code string) (string, time.Time, *domain.User, error)
}

// AuthHandler exposes registration, login and code redemption.
type AuthHandler struct {
	auth AuthFlow
}

// NewAuthHandler constructs handler.
func NewAuthHandler(auth AuthFlow) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validateCredentials(req.Email, req.Password); len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	user, purpose, err := h.auth.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.AuthInitiatedResponse{
		Message: "Registration initiated. Please verify the code.",
		UserID:  user.ID,
		Purpose: purpose,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := validateCredentials(req.Email, req.Password); len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	user, purpose, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthInitiatedResponse{
		Message: "Login initiated. Please verify the code.",
		UserID:  user.ID,
		Purpose: purpose,
	})
}

// VerifyOTP handles POST /auth/otp/verify.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.OTPVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := map[string]any{}
	if req.UserID <= 0 {
		details["user_id"] = "must be greater than 0"
	}
	if req.Purpose == "" {
		details["purpose"] = "is required"
	} else if len(req.Purpose) > 100 {
		details["purpose"] = "must not exceed 100 characters"
	}
	if !isSixDigitCode(req.Code) {
		details["code"] = "must be exactly 6 digits"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	token, expiresAt, user, err := h.auth.VerifyOTP(c.Context(), req.UserID, req.Purpose, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(dto.OTPVerifyResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User: dto.UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Role:  string(user.Role),
		},
	})
}

func validateCredentials(email, password string) map[string]any {
	details := map[string]any{}
	if email == "" {
		details["email"] = "is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		details["email"] = "must be a valid email address"
	}
	if password == "" {
		details["password"] = "is required"
	} else if len(password) < 6 {
		details["password"] = "must be at least 6 characters"
	}
	return details
}

func isSixDigitCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
