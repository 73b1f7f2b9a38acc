package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hrcell_backend/internal/auth"
	"hrcell_backend/internal/config"
	"hrcell_backend/internal/database"
	"hrcell_backend/internal/email"
	"hrcell_backend/internal/handlers"
	"hrcell_backend/internal/logger"
	"hrcell_backend/internal/middleware"
	"hrcell_backend/internal/models"
	"hrcell_backend/internal/repositories"
	"hrcell_backend/internal/routes"
	"hrcell_backend/internal/services"
	"hrcell_backend/internal/validator"
	"hrcell_backend/internal/wilayah"
)

func Run(configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Println("failed to load config:", err)
		panic(err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstSuperAdmin(db, cfg); err != nil {
		logger.Fatal("Failed to seed first super admin", "error", err)
	}

	ginRouter := SetupRouter(cfg, db)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg, db)
	appHandlers := initializeHandlers(cfg, serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, db *gorm.DB) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.SMTPHost != "" {
		emailService = email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			UseTLS:    cfg.Email.UseTLS,
		}, email.NewTemplateManager())
	} else {
		logger.Warn("SMTP is not configured, outgoing email is disabled")
	}

	principalRepo := repositories.NewPrincipalRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	formFieldRepo := repositories.NewFormFieldRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	tokenIssuer := auth.NewTokenIssuer(cfg.JWT.Secret)

	sessionService := services.NewSessionService(sessionRepo)
	authService := services.NewAuthService(principalRepo, tokenIssuer)
	unifiedAuthService := services.NewUnifiedAuthService(principalRepo, companyRepo, sessionService)
	companyService := services.NewCompanyService(companyRepo, principalRepo, jobRepo, formFieldRepo, applicationRepo, activityRepo, sessionRepo)
	jobService := services.NewJobService(jobRepo, applicationRepo)
	formFieldService := services.NewFormFieldService(formFieldRepo, jobRepo)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, companyRepo, formFieldRepo, activityRepo, emailService, cfg.Storage.BasePath)
	userService := services.NewUserService(principalRepo, companyRepo, sessionRepo)
	activityService := services.NewActivityService(activityRepo)

	return &services.ServiceContainer{
		AuthService:        authService,
		UnifiedAuthService: unifiedAuthService,
		SessionService:     sessionService,
		CompanyService:     companyService,
		JobService:         jobService,
		FormFieldService:   formFieldService,
		ApplicationService: applicationService,
		UserService:        userService,
		ActivityService:    activityService,
		EmailService:       emailService,
	}
}

func initializeHandlers(cfg *config.Config, sc *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)
	wilayahClient := wilayah.NewClient(cfg.Wilayah.BaseURL)

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, sc.AuthService, sc.UnifiedAuthService, sc.SessionService, cfg.Session.CookieDomain),
		CompanyHandler:     handlers.NewCompanyHandler(baseHandler, sc.CompanyService, sc.AuthService),
		JobHandler:         handlers.NewJobHandler(baseHandler, sc.JobService, sc.SessionService),
		FormFieldHandler:   handlers.NewFormFieldHandler(baseHandler, sc.FormFieldService, sc.SessionService),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, sc.ApplicationService, sc.SessionService),
		UserHandler:        handlers.NewUserHandler(baseHandler, sc.UserService, sc.AuthService, sc.SessionService),
		ActivityHandler:    handlers.NewActivityHandler(baseHandler, sc.ActivityService, sc.AuthService, sc.SessionService),
		PublicHandler:      handlers.NewPublicHandler(baseHandler, sc.CompanyService, sc.JobService, sc.FormFieldService, sc.ApplicationService, wilayahClient),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	return router
}

// seedFirstSuperAdmin создает первого супер-админа из конфига,
// если в базе еще нет ни одного
func seedFirstSuperAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Bootstrap.SuperAdminEmail == "" || cfg.Bootstrap.SuperAdminPassword == "" {
		logger.Warn("Bootstrap super admin credentials are not set, skipping seeding")
		return nil
	}

	principalRepo := repositories.NewPrincipalRepository(db)

	count, err := principalRepo.CountByKind(models.KindSuperAdmin)
	if err != nil {
		return fmt.Errorf("failed to count super admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Bootstrap.SuperAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	err = principalRepo.Create(&models.Principal{
		Kind:         models.KindSuperAdmin,
		Email:        cfg.Bootstrap.SuperAdminEmail,
		Name:         "Super Admin",
		PasswordHash: hash,
		IsActive:     true,
		AuthProvider: models.AuthProviderEmail,
	})
	if err != nil {
		return fmt.Errorf("failed to create bootstrap super admin: %w", err)
	}

	logger.Info("Bootstrap super admin created", "email", cfg.Bootstrap.SuperAdminEmail)
	return nil
}
