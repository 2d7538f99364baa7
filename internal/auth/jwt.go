package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token scopes. Every issued token carries one, including the
// email-confirmation token, so no token is accepted outside its
// verification path.
const (
	ScopeAccess  = "access_token"
	ScopeRefresh = "refresh_token"
	ScopeEmail   = "email_token"
)

// Token lifetimes
const (
	AccessTokenTTL  = 14 * 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
	EmailTokenTTL   = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken   = errors.New("token is invalid or expired")
	ErrWrongScope     = errors.New("invalid scope for token")
	ErrMissingSubject = errors.New("token has no subject")
)

// Claims is the signed payload: subject (user email), iat, exp and a scope tag
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies JWTs. Constructed once at startup from
// configuration and passed to call sites, never a package-level singleton.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
}

func NewTokenManager(secret, algorithm string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("algorithm %s is not an HMAC method", algorithm)
	}
	return &TokenManager{
		secret: []byte(secret),
		method: method,
	}, nil
}

// GenerateAccessToken issues a short-lived token authorizing API calls
func (tm *TokenManager) GenerateAccessToken(subject string) (string, error) {
	return tm.issue(subject, ScopeAccess, AccessTokenTTL)
}

// GenerateRefreshToken issues the longer-lived token used to mint new
// access tokens; the server stores one live value per user
func (tm *TokenManager) GenerateRefreshToken(subject string) (string, error) {
	return tm.issue(subject, ScopeRefresh, RefreshTokenTTL)
}

// GenerateEmailToken issues the token embedded in confirmation links
func (tm *TokenManager) GenerateEmailToken(subject string) (string, error) {
	return tm.issue(subject, ScopeEmail, EmailTokenTTL)
}

func (tm *TokenManager) issue(subject, scope string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every token unique even within one second, so
			// two refresh tokens for the same user never collide
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(tm.method, claims).SignedString(tm.secret)
}

// ParseAccessToken returns the subject of a valid access token
func (tm *TokenManager) ParseAccessToken(tokenStr string) (string, error) {
	return tm.parseScoped(tokenStr, ScopeAccess)
}

// ParseRefreshToken returns the subject of a valid refresh token
func (tm *TokenManager) ParseRefreshToken(tokenStr string) (string, error) {
	return tm.parseScoped(tokenStr, ScopeRefresh)
}

// ParseEmailToken returns the email inside a confirmation token
func (tm *TokenManager) ParseEmailToken(tokenStr string) (string, error) {
	return tm.parseScoped(tokenStr, ScopeEmail)
}

func (tm *TokenManager) parseScoped(tokenStr, scope string) (string, error) {
	claims, err := tm.parse(tokenStr)
	if err != nil {
		return "", err
	}
	if claims.Scope != scope {
		return "", ErrWrongScope
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}

func (tm *TokenManager) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != tm.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
