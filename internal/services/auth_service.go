package services

import (
	"contacts_backend/internal/auth"
	"contacts_backend/internal/email"
	"contacts_backend/internal/logger"
	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/services/dto"
	"contacts_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest, host string) (*dto.SignupResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.TokenResponse, error)
	ConfirmEmail(db *gorm.DB, token string) (string, error)
	RequestEmail(db *gorm.DB, userEmail, host string) (string, error)

	// ResolveUser maps an inbound access token to a persisted user.
	// Any failure, including a token for an unknown user, is ErrInvalidToken.
	ResolveUser(db *gorm.DB, accessToken string) (*models.User, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	tokens        *auth.TokenManager
	emailProvider email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		tokens:        tokens,
		emailProvider: emailProvider,
	}
}

// Signup registers a new user and sends the confirmation letter
func (s *AuthServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest, host string) (*dto.SignupResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.sendConfirmationEmail(user, host)

	return &dto.SignupResponse{
		User:   dto.NewUserResponse(user),
		Detail: "User successfully created",
	}, nil
}

// Login authenticates a confirmed user and issues a token pair
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if user == nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.Confirmed {
		return nil, apperrors.ErrEmailNotConfirmed
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokenPair(db, user)
}

// Refresh exchanges a refresh token for a new pair. The presented token
// must match the single value stored on the user; any mismatch clears the
// stored token, so the previously issued one stops working too.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.TokenResponse, error) {
	userEmail, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if user == nil {
		return nil, apperrors.ErrInvalidToken
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		if err := s.userRepo.UpdateRefreshToken(db, user, nil); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return nil, apperrors.ErrRefreshTokenMismatch
	}

	return s.issueTokenPair(db, user)
}

// ConfirmEmail flips the confirmation flag via the emailed token.
// Confirming twice is not an error.
func (s *AuthServiceImpl) ConfirmEmail(db *gorm.DB, token string) (string, error) {
	userEmail, err := s.tokens.ParseEmailToken(token)
	if err != nil {
		return "", apperrors.ErrUnprocessableToken
	}

	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if user == nil {
		return "", apperrors.ErrVerificationFailed
	}
	if user.Confirmed {
		return "Your email is already confirmed", nil
	}

	if err := s.userRepo.ConfirmEmail(db, userEmail); err != nil {
		return "", apperrors.InternalError(err)
	}
	return "Email confirmed", nil
}

// RequestEmail re-sends the confirmation letter. The response never
// reveals whether the address is registered.
func (s *AuthServiceImpl) RequestEmail(db *gorm.DB, userEmail, host string) (string, error) {
	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if user == nil {
		return "Check your email for confirmation.", nil
	}
	if user.Confirmed {
		return "Your email is already confirmed", nil
	}

	s.sendConfirmationEmail(user, host)
	return "Check your email for confirmation.", nil
}

func (s *AuthServiceImpl) ResolveUser(db *gorm.DB, accessToken string) (*models.User, error) {
	userEmail, err := s.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByEmail(db, userEmail)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if user == nil {
		// A token for a deleted or unknown user must not resolve
		return nil, apperrors.ErrInvalidToken
	}
	return user, nil
}

// issueTokenPair generates both tokens and overwrites the stored refresh token
func (s *AuthServiceImpl) issueTokenPair(db *gorm.DB, user *models.User) (*dto.TokenResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateRefreshToken(db, user, &refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// sendConfirmationEmail delivers the letter in the background; a delivery
// failure is logged and never fails the request
func (s *AuthServiceImpl) sendConfirmationEmail(user *models.User, host string) {
	if s.emailProvider == nil {
		return
	}

	token, err := s.tokens.GenerateEmailToken(user.Email)
	if err != nil {
		logger.WithError(err).Error("failed to issue confirmation token", "email", user.Email)
		return
	}

	go func() {
		if err := s.emailProvider.SendConfirmation(user.Email, user.Username, host, token); err != nil {
			logger.WithError(err).Error("failed to send confirmation email", "email", user.Email)
		}
	}()
}
