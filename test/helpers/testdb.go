package helpers

import (
	"testing"
	"time"

	"contacts_backend/internal/auth"
	"contacts_backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory SQLite database with the full schema
// migrated. Each call returns an isolated database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Contact{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CreateUser persists a confirmed user with a hashed password and returns it
func CreateUser(t *testing.T, db *gorm.DB, username, email, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Confirmed:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user %s: %v", email, err)
	}
	return user
}

// CreateContact persists a contact owned by the given user
func CreateContact(t *testing.T, db *gorm.DB, user *models.User, name, lastname, email string, birthday *time.Time) *models.Contact {
	t.Helper()

	contact := &models.Contact{
		Name:        name,
		Lastname:    lastname,
		Email:       email,
		Phone:       "+380501112233",
		Birthday:    birthday,
		Description: "None",
		UserID:      user.ID,
	}
	if err := db.Create(contact).Error; err != nil {
		t.Fatalf("failed to create test contact %s: %v", email, err)
	}
	return contact
}

// DateOf builds a midnight-UTC date
func DateOf(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
