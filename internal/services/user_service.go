package services

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"contacts_backend/internal/models"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/services/dto"
	"contacts_backend/internal/storage"
	"contacts_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var allowedAvatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UserService interface {
	Me(user *models.User) dto.UserResponse
	UpdateAvatar(ctx context.Context, db *gorm.DB, user *models.User, file *multipart.FileHeader) (*dto.UserResponse, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	storage  storage.Storage
}

func NewUserService(userRepo repositories.UserRepository, store storage.Storage) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		storage:  store,
	}
}

func (s *UserServiceImpl) Me(user *models.User) dto.UserResponse {
	return dto.NewUserResponse(user)
}

// UpdateAvatar stores the uploaded image and persists its public URL
func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, db *gorm.DB, user *models.User, file *multipart.FileHeader) (*dto.UserResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAvatarExtensions[ext] {
		return nil, apperrors.ValidationError("unsupported image format")
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
	}

	key := fmt.Sprintf("avatars/%s/%s%s", user.ID, uuid.NewString(), ext)
	if err := s.storage.Save(ctx, key, src, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	avatarURL, err := s.storage.GetURL(ctx, key)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	updated, err := s.userRepo.UpdateAvatar(db, user.Email, avatarURL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if updated == nil {
		return nil, apperrors.ErrInvalidToken
	}
	resp := dto.NewUserResponse(updated)
	return &resp, nil
}
