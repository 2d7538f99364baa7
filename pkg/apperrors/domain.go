package apperrors

import "net/http"

// Domain error values for the auth and contacts domains. Services return
// these; handlers pass them to HandleError untouched.
var (
	// Bad email/password pair on login
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid credentials", http.StatusUnauthorized)

	// Login before the confirmation link was followed
	ErrEmailNotConfirmed = New(CodeUnauthorized, "auth", "Email not confirmed", http.StatusUnauthorized)

	// Signup with an email that is already registered
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "auth", "Account already exists", http.StatusConflict)

	// Missing, malformed, expired or wrong-scope access/refresh token,
	// or a token whose subject no longer exists
	ErrInvalidToken = New(CodeInvalidToken, "auth", "Could not validate credentials", http.StatusUnauthorized)

	// Refresh token that does not match the one stored on the user
	ErrRefreshTokenMismatch = New(CodeInvalidToken, "auth", "Invalid refresh token", http.StatusUnauthorized)

	// Malformed email-confirmation token
	ErrUnprocessableToken = New(CodeUnprocessableToken, "auth", "Invalid token for email verification", http.StatusUnprocessableEntity)

	// Confirmation token for an email with no user row
	ErrVerificationFailed = New(CodeValidationFailed, "auth", "Verification error", http.StatusBadRequest)
)
