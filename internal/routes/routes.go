package routes

import (
	"net/http"
	"time"

	"contacts_backend/internal/handlers"
	"contacts_backend/internal/middleware"
	"contacts_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes wires every HTTP route under /api.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authService services.AuthService,
	redisClient *redis.Client,
	rateLimitRequests int,
	rateLimitWindow time.Duration,
) {
	ginRouter.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", appHandlers.Auth.Signup)
		auth.POST("/login", appHandlers.Auth.Login)
		auth.GET("/refresh_token", appHandlers.Auth.Refresh)
		auth.GET("/confirmed_email/:token", appHandlers.Auth.ConfirmEmail)
		auth.POST("/request_email", appHandlers.Auth.RequestEmail)
	}

	users := api.Group("/users")
	users.Use(middleware.AuthMiddleware(authService))
	{
		users.GET("/me", appHandlers.User.Me)
		users.PATCH("/avatar", appHandlers.User.UpdateAvatar)
	}

	rateLimit := middleware.RateLimitMiddleware(redisClient, rateLimitRequests, rateLimitWindow)

	contacts := api.Group("/contacts")
	contacts.Use(middleware.AuthMiddleware(authService))
	{
		contacts.GET("", rateLimit, appHandlers.Contact.List)
		contacts.POST("", appHandlers.Contact.Create)
		contacts.GET("/search", appHandlers.Contact.Search)
		contacts.GET("/week_birthdays", appHandlers.Contact.UpcomingBirthdays)
		contacts.GET("/:id", appHandlers.Contact.Get)
		// PUT and PATCH share the sparse-update handler: absent fields
		// are left untouched either way
		contacts.PUT("/:id", appHandlers.Contact.Patch)
		contacts.PATCH("/:id", appHandlers.Contact.Patch)
		contacts.DELETE("/:id", appHandlers.Contact.Delete)
	}
}
