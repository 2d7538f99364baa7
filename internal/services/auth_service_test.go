package services_test

import (
	"sync"
	"testing"
	"time"

	"contacts_backend/internal/auth"
	"contacts_backend/internal/email"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/services"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"
	"contacts_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmailProvider struct {
	mu     sync.Mutex
	sent   []string
	tokens []string
}

func (p *recordingEmailProvider) Send(msg *email.Email) error { return nil }
func (p *recordingEmailProvider) SendWithTemplate(name string, data email.TemplateData, msg *email.Email) error {
	return nil
}
func (p *recordingEmailProvider) SendConfirmation(to, username, host, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, to)
	p.tokens = append(p.tokens, token)
	return nil
}
func (p *recordingEmailProvider) Validate() error { return nil }

func newAuthService(t *testing.T) (services.AuthService, *auth.TokenManager) {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret-key", "HS256")
	require.NoError(t, err)
	return services.NewAuthService(repositories.NewUserRepository(), tokens, nil), tokens
}

func TestSignup_CreatesUnconfirmedUser(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, _ := newAuthService(t)

	resp, err := svc.Signup(db, &dto.SignupRequest{
		Username: "newuser",
		Email:    "new@test.com",
		Password: "secret123",
	}, "http://localhost:8000")
	require.NoError(t, err)
	assert.Equal(t, "new@test.com", resp.User.Email)

	login, err := svc.Login(db, &dto.LoginRequest{Email: "new@test.com", Password: "secret123"})
	assert.Nil(t, login)
	assert.ErrorIs(t, err, apperrors.ErrEmailNotConfirmed)
}

func TestSignup_SendsConfirmationEmail(t *testing.T) {
	db := helpers.NewTestDB(t)
	tokens, err := auth.NewTokenManager("test-secret-key", "HS256")
	require.NoError(t, err)
	provider := &recordingEmailProvider{}
	svc := services.NewAuthService(repositories.NewUserRepository(), tokens, provider)

	_, err = svc.Signup(db, &dto.SignupRequest{
		Username: "newuser",
		Email:    "new@test.com",
		Password: "secret123",
	}, "http://localhost:8000")
	require.NoError(t, err)

	// delivery happens in the background
	assert.Eventually(t, func() bool {
		provider.mu.Lock()
		defer provider.mu.Unlock()
		return len(provider.sent) == 1
	}, time.Second, 10*time.Millisecond)

	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Equal(t, "new@test.com", provider.sent[0])
	subject, err := tokens.ParseEmailToken(provider.tokens[0])
	require.NoError(t, err)
	assert.Equal(t, "new@test.com", subject)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, _ := newAuthService(t)
	helpers.CreateUser(t, db, "taken", "taken@test.com", "secret123")

	_, err := svc.Signup(db, &dto.SignupRequest{
		Username: "another",
		Email:    "taken@test.com",
		Password: "secret123",
	}, "http://localhost:8000")
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, tokens := newAuthService(t)
	helpers.CreateUser(t, db, "alice", "alice@test.com", "secret123")

	pair, err := svc.Login(db, &dto.LoginRequest{Email: "alice@test.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)

	subject, err := tokens.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@test.com", subject)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, _ := newAuthService(t)
	helpers.CreateUser(t, db, "alice", "alice@test.com", "secret123")

	_, err := svc.Login(db, &dto.LoginRequest{Email: "alice@test.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, _ := newAuthService(t)

	_, err := svc.Login(db, &dto.LoginRequest{Email: "ghost@test.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefresh_RotatesStoredToken(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, _ := newAuthService(t)
	user := helpers.CreateUser(t, db, "alice", "alice@test.com", "secret123")

	pair, err := svc.Login(db, &dto.LoginRequest{Email: "alice@test.com", Password: "secret123"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(db, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	require.NoError(t, db.First(user, "id = ?", user.ID).Error)
	require.NotNil(t, user.RefreshToken)
	assert.Equal(t, rotated.RefreshToken, *user.RefreshToken)
}

// A refresh token that is valid but no longer the stored one must be
// rejected, and the stored token must be cleared so the session ends on
// both sides.
func TestRefresh_MismatchClearsStoredToken(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, tokens := newAuthService(t)
	user := helpers.CreateUser(t, db, "alice", "alice@test.com", "secret123")

	pair, err := svc.Login(db, &dto.LoginRequest{Email: "alice@test.com", Password: "secret123"})
	require.NoError(t, err)

	stale, err := tokens.GenerateRefreshToken("alice@test.com")
	require.NoError(t, err)

	_, err = svc.Refresh(db, stale)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenMismatch)

	require.NoError(t, db.First(user, "id = ?", user.ID).Error)
	assert.Nil(t, user.RefreshToken)

	// the previously stored token is dead too
	_, err = svc.Refresh(db, pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrRefreshTokenMismatch)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, tokens := newAuthService(t)
	helpers.CreateUser(t, db, "alice", "alice@test.com", "secret123")

	accessToken, err := tokens.GenerateAccessToken("alice@test.com")
	require.NoError(t, err)

	_, err = svc.Refresh(db, accessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestConfirmEmail_Idempotent(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, tokens := newAuthService(t)

	_, err := svc.Signup(db, &dto.SignupRequest{
		Username: "newuser",
		Email:    "new@test.com",
		Password: "secret123",
	}, "http://localhost:8000")
	require.NoError(t, err)

	token, err := tokens.GenerateEmailToken("new@test.com")
	require.NoError(t, err)

	msg, err := svc.ConfirmEmail(db, token)
	require.NoError(t, err)
	assert.Equal(t, "Email confirmed", msg)

	msg, err = svc.ConfirmEmail(db, token)
	require.NoError(t, err)
	assert.Equal(t, "Your email is already confirmed", msg)

	_, err = svc.Login(db, &dto.LoginRequest{Email: "new@test.com", Password: "secret123"})
	assert.NoError(t, err)
}

func TestConfirmEmail_RejectsWrongScope(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, tokens := newAuthService(t)
	helpers.CreateUser(t, db, "alice", "alice@test.com", "secret123")

	accessToken, err := tokens.GenerateAccessToken("alice@test.com")
	require.NoError(t, err)

	_, err = svc.ConfirmEmail(db, accessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnprocessableToken)
}

func TestConfirmEmail_UnknownUser(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, tokens := newAuthService(t)

	token, err := tokens.GenerateEmailToken("ghost@test.com")
	require.NoError(t, err)

	_, err = svc.ConfirmEmail(db, token)
	assert.ErrorIs(t, err, apperrors.ErrVerificationFailed)
}

func TestRequestEmail_DoesNotRevealRegistration(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, _ := newAuthService(t)

	msg, err := svc.RequestEmail(db, "ghost@test.com", "http://localhost:8000")
	require.NoError(t, err)
	assert.Equal(t, "Check your email for confirmation.", msg)
}

func TestRequestEmail_AlreadyConfirmed(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, _ := newAuthService(t)
	helpers.CreateUser(t, db, "alice", "alice@test.com", "secret123")

	msg, err := svc.RequestEmail(db, "alice@test.com", "http://localhost:8000")
	require.NoError(t, err)
	assert.Equal(t, "Your email is already confirmed", msg)
}

func TestResolveUser(t *testing.T) {
	db := helpers.NewTestDB(t)
	svc, tokens := newAuthService(t)
	user := helpers.CreateUser(t, db, "alice", "alice@test.com", "secret123")

	accessToken, err := tokens.GenerateAccessToken("alice@test.com")
	require.NoError(t, err)

	resolved, err := svc.ResolveUser(db, accessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	// a deleted user's still-valid token must stop resolving
	require.NoError(t, db.Unscoped().Delete(user).Error)
	_, err = svc.ResolveUser(db, accessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	refreshToken, err := tokens.GenerateRefreshToken("alice@test.com")
	require.NoError(t, err)
	_, err = svc.ResolveUser(db, refreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
