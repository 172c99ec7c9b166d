package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/auth"
)

var secret = []byte("test-secret")

func TestNewTokensRequiresSecret(t *testing.T) {
	_, err := auth.NewTokens(nil, time.Hour)
	assert.ErrorIs(t, err, auth.ErrEmptySecret)
}

func TestIssueAndVerify(t *testing.T) {
	tokens, err := auth.NewTokens(secret, 720*time.Hour)
	require.NoError(t, err)

	raw, err := tokens.Issue("user-1", "Test User", "test@example.com")
	require.NoError(t, err)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "Test User", claims.Name)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(720*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tokens, err := auth.NewTokens(secret, -time.Minute)
	require.NoError(t, err)

	raw, err := tokens.Issue("user-1", "n", "e")
	require.NoError(t, err)

	_, err = tokens.Verify(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	other, err := auth.NewTokens([]byte("other"), time.Hour)
	require.NoError(t, err)
	raw, err := other.Issue("user-1", "n", "e")
	require.NoError(t, err)

	tokens, err := auth.NewTokens(secret, time.Hour)
	require.NoError(t, err)
	_, err = tokens.Verify(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerifyRejectsAlgNone(t *testing.T) {
	claims := auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tokens, err := auth.NewTokens(secret, time.Hour)
	require.NoError(t, err)
	_, err = tokens.Verify(raw)
	assert.Error(t, err)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{Name: "n"}).SignedString(secret)
	require.NoError(t, err)

	tokens, err := auth.NewTokens(secret, time.Hour)
	require.NoError(t, err)
	_, err = tokens.Verify(raw)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := auth.BcryptHasher{Cost: 4}

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.NoError(t, h.Compare(hash, "password123"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), auth.ErrPasswordMismatch)
}

func TestBcryptHasherRejectsLongPassword(t *testing.T) {
	h := auth.BcryptHasher{Cost: 4}

	_, err := h.Hash(strings.Repeat("a", auth.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, auth.ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("a", auth.MaxPasswordBytes))
	assert.NoError(t, err)
}
