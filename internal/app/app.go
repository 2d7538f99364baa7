package app

import (
	"context"
	"fmt"
	"time"

	"contacts_backend/database"
	"contacts_backend/internal/auth"
	"contacts_backend/internal/config"
	"contacts_backend/internal/email"
	"contacts_backend/internal/handlers"
	"contacts_backend/internal/logger"
	"contacts_backend/internal/middleware"
	"contacts_backend/internal/repositories"
	"contacts_backend/internal/routes"
	"contacts_backend/internal/services"
	"contacts_backend/internal/storage"
	"contacts_backend/internal/validator"
	"contacts_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Algorithm)
	if err != nil {
		logger.Fatal("Failed to initialize token manager", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewSessionWorker(gormDB, tokens).Start(ctx)

	ginRouter := SetupRouter(cfg, gormDB, tokens)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, tokens *auth.TokenManager) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, tokens, storageInstance)
	appHandlers := initializeHandlers(cfg, serviceContainer)

	redisClient := newRedisClient(cfg)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(
		ginRouter,
		appHandlers,
		serviceContainer.AuthService,
		redisClient,
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.WindowS)*time.Second,
	)
	return ginRouter
}

func initializeServices(cfg *config.Config, tokens *auth.TokenManager, storageInstance storage.Storage) *services.ServiceContainer {
	emailProvider := newEmailProvider(cfg)

	userRepo := repositories.NewUserRepository()
	contactRepo := repositories.NewContactRepository()

	authService := services.NewAuthService(userRepo, tokens, emailProvider)
	userService := services.NewUserService(userRepo, storageInstance)
	contactService := services.NewContactService(contactRepo)

	return &services.ServiceContainer{
		AuthService:    authService,
		UserService:    userService,
		ContactService: contactService,
		EmailService:   emailProvider,
	}
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		Auth:    handlers.NewAuthHandler(baseHandler, container.AuthService, cfg.Server.BaseURL),
		User:    handlers.NewUserHandler(baseHandler, container.UserService),
		Contact: handlers.NewContactHandler(baseHandler, container.ContactService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// newEmailProvider builds the SMTP provider, or the mock when SMTP is
// not configured so signup keeps working in development.
func newEmailProvider(cfg *config.Config) email.Provider {
	smtpCfg := &email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
		Timeout:   30 * time.Second,
	}
	if err := smtpCfg.Validate(); err != nil {
		logger.Warn("SMTP not configured, outgoing email is mocked", "reason", err)
		return &MockEmailProvider{}
	}
	templates, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}
	return email.NewSMTPProvider(smtpCfg, templates)
}

// newRedisClient returns nil when no Redis address is configured, which
// disables rate limiting.
func newRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Warn("Redis not configured, rate limiting disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
