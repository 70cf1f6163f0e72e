package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"collegeskills_backend/internal/config"
	"collegeskills_backend/internal/email"
	"collegeskills_backend/internal/handlers"
	"collegeskills_backend/internal/logger"
	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/repositories"
	"collegeskills_backend/internal/routes"
	"collegeskills_backend/internal/services"
	"collegeskills_backend/internal/services/razorpay"
	"collegeskills_backend/internal/storage"
	"collegeskills_backend/internal/validator"
	"collegeskills_backend/internal/workers"
	"collegeskills_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var defaultCategories = []string{
	"Web Development",
	"Mobile Development",
	"Design",
	"Writing",
	"Video & Animation",
	"Data & Analytics",
	"Marketing",
	"Tutoring",
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := AutoMigrate(gormDB); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := SetupRouter(ctx, cfg, gormDB, rdb)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// AutoMigrate keeps the schema in step with the models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Gig{},
		&models.ProjectRequest{},
		&models.Proposal{},
		&models.Order{},
		&models.Payment{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
		&models.ActivityLog{},
		&models.VerificationRequest{},
		&models.Review{},
		&models.Category{},
		&models.Upload{},
	)
}

func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, rdb *redis.Client) *gin.Engine {
	store, err := storage.NewLocalStorage(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}

	container := initializeServices(cfg, gormDB, rdb)

	if err := container.CategoryService.Seed(defaultCategories); err != nil {
		logger.Fatal("failed to seed categories", "error", err)
	}

	// Upload service needs the storage instance.
	uploadRepo := repositories.NewUploadRepository(gormDB)
	container.UploadService = services.NewUploadService(uploadRepo, store, cfg.Upload)

	appHandlers := initializeHandlers(cfg, container)

	wsManager := ws.NewManager(rdb, repositories.NewChatRepository(gormDB))
	go wsManager.Run(ctx)
	wsHandler := ws.NewHandler(wsManager, cfg.Server.AllowedOrigin)

	startWorkers(ctx, gormDB)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, appHandlers, wsHandler)
	return router
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, rdb *redis.Client) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	gigRepo := repositories.NewGigRepository(gormDB)
	projectRepo := repositories.NewProjectRepository(gormDB)
	proposalRepo := repositories.NewProposalRepository(gormDB)
	orderRepo := repositories.NewOrderRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)
	chatRepo := repositories.NewChatRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	activityRepo := repositories.NewActivityRepository(gormDB)
	verificationRepo := repositories.NewVerificationRepository(gormDB)
	reviewRepo := repositories.NewReviewRepository(gormDB)
	categoryRepo := repositories.NewCategoryRepository(gormDB)

	mailer := email.NewProvider(cfg.Email)
	gateway := razorpay.NewClient(cfg.Razorpay)
	publisher := ws.NewRedisPublisher(rdb)

	activityService := services.NewActivityService(activityRepo)
	notificationService := services.NewNotificationService(notificationRepo, publisher)

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(userRepo, profileRepo, activityService),
		ProfileService:      services.NewProfileService(profileRepo, userRepo, verificationRepo),
		GigService:          services.NewGigService(gigRepo, profileRepo, activityService),
		ProjectService:      services.NewProjectService(projectRepo, userRepo, activityService),
		ProposalService:     services.NewProposalService(proposalRepo, projectRepo, profileRepo, orderRepo, paymentRepo, notificationService, activityService),
		PaymentService:      services.NewPaymentService(gormDB, paymentRepo, orderRepo, proposalRepo, projectRepo, profileRepo, userRepo, gateway, notificationService, activityService, cfg.Razorpay),
		OrderService:        services.NewOrderService(orderRepo, notificationService, activityService),
		ChatService:         services.NewChatService(chatRepo, projectRepo, notificationService, publisher),
		NotificationService: notificationService,
		ActivityService:     activityService,
		RecommendationService: services.NewRecommendationService(profileRepo, projectRepo),
		VerificationService:   services.NewVerificationService(verificationRepo, profileRepo, userRepo, notificationService, activityService, mailer),
		ReviewService:         services.NewReviewService(reviewRepo, orderRepo, profileRepo, notificationService),
		CategoryService:       services.NewCategoryService(categoryRepo),
	}
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:           handlers.NewAuthHandler(base, container.AuthService),
		ProfileHandler:        handlers.NewProfileHandler(base, container.ProfileService),
		GigHandler:            handlers.NewGigHandler(base, container.GigService),
		ProjectHandler:        handlers.NewProjectHandler(base, container.ProjectService, container.ProposalService),
		ProposalHandler:       handlers.NewProposalHandler(base, container.ProposalService),
		PaymentHandler:        handlers.NewPaymentHandler(base, container.PaymentService, cfg.Razorpay),
		OrderHandler:          handlers.NewOrderHandler(base, container.OrderService),
		ChatHandler:           handlers.NewChatHandler(base, container.ChatService),
		NotificationHandler:   handlers.NewNotificationHandler(base, container.NotificationService, container.ActivityService),
		RecommendationHandler: handlers.NewRecommendationHandler(base, container.RecommendationService),
		VerificationHandler:   handlers.NewVerificationHandler(base, container.VerificationService),
		ReviewHandler:         handlers.NewReviewHandler(base, container.ReviewService),
		UploadHandler:         handlers.NewUploadHandler(base, container.UploadService, container.CategoryService),
	}
}

func startWorkers(ctx context.Context, gormDB *gorm.DB) {
	projectRepo := repositories.NewProjectRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	go workers.NewProjectExpiryWorker(projectRepo).Run(ctx)
	go workers.NewNotificationCleanupWorker(notificationRepo).Run(ctx)
}

// seedFirstAdmin creates the bootstrap admin account from environment
// configuration. Admin rights live on the user record; nothing is
// special-cased by email at request time.
func seedFirstAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("FIRST_ADMIN_EMAIL")
	adminPassword := os.Getenv("FIRST_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("email = ?", adminEmail).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		admin := &models.User{
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         models.UserRoleAdmin,
			Status:       models.UserStatusActive,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		profile := &models.Profile{
			UserID:    admin.ID,
			UserType:  models.UserRoleAdmin,
			FirstName: "Platform",
			LastName:  "Admin",
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}

		logger.Info("seeded first admin user", "email", adminEmail)
		return nil
	})
}
