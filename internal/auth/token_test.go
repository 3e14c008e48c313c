package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/dealer-service/internal/domain"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", "dealer-service", "dealer-clients", 60)
}

func TestGenerateAndParseToken(t *testing.T) {
	tm := newTestManager()

	token, expiresAt, err := tm.GenerateToken(42, "buyer@example.com", domain.RoleCustomer)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().UTC().Add(60*time.Minute), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
	assert.Equal(t, "dealer-service", claims.Issuer)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestManager().GenerateToken(1, "a@b.com", domain.RoleAdmin)
	require.NoError(t, err)

	other := NewTokenManager("different-secret", "dealer-service", "dealer-clients", 60)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongIssuer(t *testing.T) {
	issuedBy := NewTokenManager("test-secret", "someone-else", "dealer-clients", 60)
	token, _, err := issuedBy.GenerateToken(1, "a@b.com", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = newTestManager().ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongAudience(t *testing.T) {
	issuedBy := NewTokenManager("test-secret", "dealer-service", "other-clients", 60)
	token, _, err := issuedBy.GenerateToken(1, "a@b.com", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = newTestManager().ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	past := time.Now().UTC().Add(-time.Hour)
	claims := &Claims{
		Email: "a@b.com",
		Role:  domain.RoleCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "dealer-service",
			Audience:  jwt.ClaimStrings{"dealer-clients"},
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newTestManager().ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsMissingExpiry(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "1",
			Issuer:   "dealer-service",
			Audience: jwt.ClaimStrings{"dealer-clients"},
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newTestManager().ParseToken(token)
	assert.Error(t, err)
}
