package repositories

import (
	"errors"
	"strings"

	"contacts_backend/internal/models"

	"gorm.io/gorm"
)

var ErrUserAlreadyExists = errors.New("user already exists")

// UserRepository owns lookup/creation/update of user records and the
// refresh-token state. Absence is a normal outcome: lookups return
// (nil, nil) when no row matches. Every method runs on the request-scoped
// *gorm.DB supplied by the caller.
type UserRepository interface {
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByID(db *gorm.DB, id string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error
	UpdateRefreshToken(db *gorm.DB, user *models.User, token *string) error
	ConfirmEmail(db *gorm.DB, email string) error
	UpdateAvatar(db *gorm.DB, email, url string) (*models.User, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	existing, err := r.FindByEmail(db, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserAlreadyExists
	}
	if err := db.Create(user).Error; err != nil {
		// Two concurrent signups can both pass the lookup; the loser
		// hits the email unique index and still means "already exists".
		if isDuplicateKey(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// isDuplicateKey recognizes a unique-constraint violation across the
// drivers in use: gorm's translated error, postgres SQLSTATE 23505 and
// sqlite's UNIQUE constraint message.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// UpdateRefreshToken overwrites the single stored refresh token; a nil
// token invalidates the session entirely.
func (r *UserRepositoryImpl) UpdateRefreshToken(db *gorm.DB, user *models.User, token *string) error {
	user.RefreshToken = token
	return db.Model(user).Update("refresh_token", token).Error
}

// ConfirmEmail flips the confirmation flag. Confirming an already-confirmed
// user is a no-op.
func (r *UserRepositoryImpl) ConfirmEmail(db *gorm.DB, email string) error {
	return db.Model(&models.User{}).Where("email = ?", email).Update("confirmed", true).Error
}

func (r *UserRepositoryImpl) UpdateAvatar(db *gorm.DB, email, url string) (*models.User, error) {
	user, err := r.FindByEmail(db, email)
	if err != nil || user == nil {
		return nil, err
	}
	user.Avatar = url
	if err := db.Model(user).Update("avatar", url).Error; err != nil {
		return nil, err
	}
	return user, nil
}
