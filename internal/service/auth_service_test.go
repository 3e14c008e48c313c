package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/dealer-service/internal/auth"
	"github.com/spec-kit/dealer-service/internal/domain"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

type authFixture struct {
	svc      *AuthService
	users    *fakeUserRepo
	otpRepo  *fakeOTPRepo
	tokens   *auth.TokenManager
	lastCode string
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:   newFakeUserRepo(),
		otpRepo: newFakeOTPRepo(),
		tokens:  auth.NewTokenManager("test-secret", "dealer-service", "dealer-clients", 60),
	}
	userService := NewUserService(f.users, nil, fixedClock(testEpoch))
	otpService := newTestOTPService(f.otpRepo, fixedClock(testEpoch), func(d *OTPDependencies) {
		d.NewCode = func() (string, error) {
			code, err := NewNumericCode()
			f.lastCode = code
			return code, err
		}
	})
	f.svc = NewAuthService(userService, otpService, f.tokens, nil)
	return f
}

func TestRegisterCreatesCustomerAndIssuesCode(t *testing.T) {
	f := newAuthFixture(t)

	user, purpose, err := f.svc.Register(context.Background(), "buyer@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Equal(t, domain.OTPPurposeRegister, purpose)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	require.Len(t, f.otpRepo.codes, 1)
	assert.Equal(t, user.ID, f.otpRepo.codes[0].UserID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.Register(ctx, "buyer@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = f.svc.Register(ctx, "buyer@example.com", "other-pass1")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestLoginIssuesCodeNotToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, _, err := f.svc.Register(ctx, "buyer@example.com", "s3cret-pass")
	require.NoError(t, err)

	user, purpose, err := f.svc.Login(ctx, "buyer@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, domain.OTPPurposeLogin, purpose)
	require.Len(t, f.otpRepo.codes, 2, "register and login each issued a code")
}

func TestLoginFailureIsUniform(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.Register(ctx, "buyer@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, wrongPassword := f.svc.Login(ctx, "buyer@example.com", "wrong-pass")
	require.Error(t, wrongPassword)
	assert.True(t, apperrors.IsCode(wrongPassword, "UNAUTHORIZED"))

	_, _, unknownEmail := f.svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	require.Error(t, unknownEmail)
	assert.True(t, apperrors.IsCode(unknownEmail, "UNAUTHORIZED"))

	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error(),
		"wrong password and unknown email must be indistinguishable")
}

func TestVerifyOTPMintsToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, purpose, err := f.svc.Register(ctx, "buyer@example.com", "s3cret-pass")
	require.NoError(t, err)

	token, expiresAt, verified, err := f.svc.VerifyOTP(ctx, user.ID, purpose, f.lastCode)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now().UTC()))
	assert.Equal(t, user.ID, verified.ID)

	claims, err := f.tokens.ParseToken(token)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestVerifyOTPRejectsReuse(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, purpose, err := f.svc.Register(ctx, "buyer@example.com", "s3cret-pass")
	require.NoError(t, err)
	code := f.lastCode

	_, _, _, err = f.svc.VerifyOTP(ctx, user.ID, purpose, code)
	require.NoError(t, err)

	_, _, _, err = f.svc.VerifyOTP(ctx, user.ID, purpose, code)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestVerifyOTPRejectsWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, purpose, err := f.svc.Register(ctx, "buyer@example.com", "s3cret-pass")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == f.lastCode {
		wrong = "000001"
	}
	_, _, _, err = f.svc.VerifyOTP(ctx, user.ID, purpose, wrong)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestVerifyOTPForVanishedUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, purpose, err := f.svc.Register(ctx, "buyer@example.com", "s3cret-pass")
	require.NoError(t, err)

	f.users.delete(user.ID)

	_, _, _, err = f.svc.VerifyOTP(ctx, user.ID, purpose, f.lastCode)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
