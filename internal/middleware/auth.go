package middleware

import (
	"errors"
	"strings"

	"contacts_backend/internal/logger"
	"contacts_backend/internal/services"
	"contacts_backend/pkg/apperrors"
	"contacts_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthMiddleware resolves the bearer access token to a persisted user on
// every request and stores it in the gin context. Resolution happens per
// request, so a token for a since-deleted user is rejected.
func AuthMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		db, ok := c.Get(string(contextkeys.DBContextKey))
		if !ok {
			apperrors.HandleError(c, apperrors.InternalError(errors.New("database handle missing from context")))
			c.Abort()
			return
		}

		user, err := authService.ResolveUser(db.(*gorm.DB), tokenStr)
		if err != nil {
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextkeys.CurrentUserKey, user)
		c.Next()
	}
}
