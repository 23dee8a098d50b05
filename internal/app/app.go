package app

import (
	"fmt"

	"argent_backend/internal/auth"
	"argent_backend/internal/config"
	"argent_backend/internal/email"
	"argent_backend/internal/handlers"
	"argent_backend/internal/logger"
	"argent_backend/internal/middleware"
	"argent_backend/internal/models"
	"argent_backend/internal/repositories"
	"argent_backend/internal/routes"
	"argent_backend/internal/services"
	"argent_backend/internal/storage"
	"argent_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run - точка входа приложения: конфиг, логгер, БД, роутер, старт.
func Run() {
	cfg, err := config.Load("")
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// Migrate прогоняет автомиграции всех моделей.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.Job{},
		&models.Application{},
		&models.VerificationRecord{},
		&models.ResetPasswordRecord{},
		&models.Report{},
	)
}

// SetupRouter собирает граф зависимостей и возвращает готовый *gin.Engine.
// Вынесен отдельно от Run: тесты поднимают роутер на собственной БД.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	fileStorage, err := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	var mailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		mailProvider = email.NewSMTPProvider(cfg.Email)
	} else {
		logger.Warn("SMTP is not configured, outgoing email is disabled")
		mailProvider = email.NewNoopProvider()
	}

	tokenManager := auth.NewTokenManager(
		auth.Secrets{Access: cfg.JWT.UserAccessSecret, Refresh: cfg.JWT.UserRefreshSecret},
		auth.Secrets{Access: cfg.JWT.AdminAccessSecret, Refresh: cfg.JWT.AdminRefreshSecret},
	)

	// --- Репозитории ---
	accountRepo := repositories.NewAccountRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)
	reportRepo := repositories.NewReportRepository(gormDB)
	verificationRepo := repositories.NewVerificationRepository(gormDB)
	resetRepo := repositories.NewResetPasswordRepository(gormDB)

	// --- Сервисы ---
	authService := services.NewAuthService(accountRepo, resetRepo, tokenManager, mailProvider, cfg.Email.FrontendURL)
	userService := services.NewUserService(accountRepo, jobRepo, applicationRepo, reportRepo,
		verificationRepo, resetRepo, fileStorage, mailProvider, cfg.Email.CurrentURL)
	jobService := services.NewJobService(jobRepo, accountRepo, applicationRepo)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, accountRepo, mailProvider)
	adminService := services.NewAdminService(accountRepo, reportRepo, userService)

	// --- Хэндлеры ---
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, cfg.IsProduction())

	appHandlers := &handlers.AppHandlers{
		AuthHandler:  handlers.NewAuthHandler(baseHandler, authService),
		UserHandler:  handlers.NewUserHandler(baseHandler, userService),
		JobHandler:   handlers.NewJobHandler(baseHandler, jobService, applicationService),
		AdminHandler: handlers.NewAdminHandler(baseHandler, adminService, authService),
	}

	authMW := middleware.NewAuthMiddleware(tokenManager, accountRepo, cfg.IsProduction())

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, authMW, cfg.Storage.BasePath)

	return ginRouter
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case "mysql":
		return gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{})
	case "postgres", "":
		return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxSize
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
