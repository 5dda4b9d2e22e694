package app

import (
	"context"
	"fmt"

	"chainwork_backend/database"
	"chainwork_backend/internal/ai"
	"chainwork_backend/internal/auth"
	"chainwork_backend/internal/config"
	"chainwork_backend/internal/email"
	"chainwork_backend/internal/handlers"
	"chainwork_backend/internal/logger"
	"chainwork_backend/internal/middleware"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/internal/routes"
	"chainwork_backend/internal/services"
	"chainwork_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run wires the whole application together and starts the HTTP server.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, cfg.JWT.TTL)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter builds the gin engine with all middleware, services and
// routes. Split out from Run for tests.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	svc := initializeServices(cfg, gormDB)
	appHandlers := initializeHandlers(cfg, svc)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS())
	router.Use(middleware.DB(gormDB))

	routes.RegisterRoutes(router, appHandlers)
	return router
}

// ServiceContainer holds every service instance the handlers depend on.
type ServiceContainer struct {
	Auth         services.AuthService
	User         services.UserService
	Job          services.JobService
	Post         services.PostService
	Message      services.MessageService
	Notification services.NotificationService
	Payment      services.PaymentService
	Matching     services.MatchingService
	AI           services.AIService
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)
	postRepo := repositories.NewPostRepository(gormDB)
	messageRepo := repositories.NewMessageRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)

	var mailer email.Sender
	if cfg.Email.Enabled {
		mailer = email.NewSMTPSender(cfg)
	} else {
		mailer = email.NopSender{}
	}

	var generator ai.ContentGenerator
	if cfg.AI.APIKey == "" {
		logger.Warn("no AI api key configured, AI features disabled")
		generator = ai.DisabledGenerator{}
	} else {
		g, err := ai.NewGenerator(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			logger.Fatal("AI client initialization failed", "error", err)
		}
		generator = g
	}

	notificationService := services.NewNotificationService(notificationRepo)
	jobService := services.NewJobService(jobRepo, userRepo, notificationService, mailer)

	return &ServiceContainer{
		Auth:         services.NewAuthService(userRepo, mailer),
		User:         services.NewUserService(userRepo, jobRepo, notificationService),
		Job:          jobService,
		Post:         services.NewPostService(postRepo, userRepo, notificationService),
		Message:      services.NewMessageService(messageRepo, userRepo, notificationService),
		Notification: notificationService,
		Payment:      services.NewPaymentService(paymentRepo, userRepo, jobService, cfg),
		Matching:     services.NewMatchingService(generator, userRepo, jobRepo),
		AI:           services.NewAIService(generator, userRepo, jobRepo),
	}
}

func initializeHandlers(cfg *config.Config, svc *ServiceContainer) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		Auth:         handlers.NewAuthHandler(base, svc.Auth, svc.User),
		User:         handlers.NewUserHandler(base, svc.User, svc.AI, cfg),
		Job:          handlers.NewJobHandler(base, svc.Job, svc.AI, svc.Matching),
		Post:         handlers.NewPostHandler(base, svc.Post),
		Message:      handlers.NewMessageHandler(base, svc.Message),
		Notification: handlers.NewNotificationHandler(base, svc.Notification),
		Payment:      handlers.NewPaymentHandler(base, svc.Payment),
	}
}
