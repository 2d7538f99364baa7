package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *TokenManager {
	tm, err := NewTokenManager("test-secret-key", "HS256")
	require.NoError(t, err)
	return tm
}

func TestNewTokenManager_Validation(t *testing.T) {
	_, err := NewTokenManager("", "HS256")
	assert.Error(t, err)

	_, err = NewTokenManager("secret", "HS9000")
	assert.Error(t, err)

	// RSA methods need a key pair, not a shared secret
	_, err = NewTokenManager("secret", "RS256")
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	tm := newTestManager(t)

	token, err := tm.GenerateAccessToken("a@x.com")
	require.NoError(t, err)

	subject, err := tm.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestScopeMismatch(t *testing.T) {
	tm := newTestManager(t)

	access, err := tm.GenerateAccessToken("a@x.com")
	require.NoError(t, err)
	refresh, err := tm.GenerateRefreshToken("a@x.com")
	require.NoError(t, err)
	email, err := tm.GenerateEmailToken("a@x.com")
	require.NoError(t, err)

	// An access token must be rejected by the refresh verifier and vice versa
	_, err = tm.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrWrongScope)

	_, err = tm.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrWrongScope)

	// Email-confirmation tokens carry their own scope and are not
	// accepted anywhere else
	_, err = tm.ParseAccessToken(email)
	assert.ErrorIs(t, err, ErrWrongScope)
	_, err = tm.ParseRefreshToken(email)
	assert.ErrorIs(t, err, ErrWrongScope)

	subject, err := tm.ParseEmailToken(email)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestExpiredToken_Rejected(t *testing.T) {
	tm := newTestManager(t)

	// Sign an already-expired token with the same secret and method
	now := time.Now()
	claims := &Claims{
		Scope: ScopeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@x.com",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * AccessTokenTTL)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	_, err = tm.ParseAccessToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = tm.ParseRefreshToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestForeignSignature_Rejected(t *testing.T) {
	tm := newTestManager(t)

	other, err := NewTokenManager("another-secret", "HS256")
	require.NoError(t, err)

	token, err := other.GenerateAccessToken("a@x.com")
	require.NoError(t, err)

	_, err = tm.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingSubject_Rejected(t *testing.T) {
	tm := newTestManager(t)

	token, err := tm.GenerateAccessToken("")
	require.NoError(t, err)

	_, err = tm.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestGarbageToken_Rejected(t *testing.T) {
	tm := newTestManager(t)

	_, err := tm.ParseEmailToken("not-a-jwt-at-all")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
