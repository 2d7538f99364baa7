package workers

import (
	"context"
	"time"

	"contacts_backend/internal/auth"
	"contacts_backend/internal/logger"
	"contacts_backend/internal/models"

	"gorm.io/gorm"
)

const sessionSweepInterval = 6 * time.Hour

// SessionWorker clears stored refresh tokens that have expired, so dead
// sessions do not linger in the users table.
type SessionWorker struct {
	db     *gorm.DB
	tokens *auth.TokenManager
}

func NewSessionWorker(db *gorm.DB, tokens *auth.TokenManager) *SessionWorker {
	return &SessionWorker{db: db, tokens: tokens}
}

func (w *SessionWorker) Start(ctx context.Context) {
	go w.sweepLoop(ctx)
}

func (w *SessionWorker) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Sweep(w.db); err != nil {
				logger.WithError(err).Warn("session sweep failed")
			}
		}
	}
}

// Sweep walks users holding a refresh token and clears the ones that no
// longer parse, which covers expiry and secret rotation.
func (w *SessionWorker) Sweep(db *gorm.DB) error {
	var users []models.User
	if err := db.Where("refresh_token IS NOT NULL").Find(&users).Error; err != nil {
		return err
	}

	cleared := 0
	for i := range users {
		user := &users[i]
		if _, err := w.tokens.ParseRefreshToken(*user.RefreshToken); err == nil {
			continue
		}
		if err := db.Model(user).Update("refresh_token", nil).Error; err != nil {
			return err
		}
		cleared++
	}

	if cleared > 0 {
		logger.Info("cleared expired sessions", "count", cleared)
	}
	return nil
}
