package main

import (
	"log"
	"os"

	api "kanflow-backend/cmd/api"
	"kanflow-backend/internal/aggregator"
	authdomain "kanflow-backend/internal/auth/domain"
	authRepo "kanflow-backend/internal/auth/repository"
	authUsecase "kanflow-backend/internal/auth/usecase"
	integrationdomain "kanflow-backend/internal/integration/domain"
	integrationRepo "kanflow-backend/internal/integration/repository"
	integrationUsecase "kanflow-backend/internal/integration/usecase"
	"kanflow-backend/internal/session"
	taskdomain "kanflow-backend/internal/task/domain"
	taskRepo "kanflow-backend/internal/task/repository"
	"kanflow-backend/internal/task/scheduler"
	taskUsecase "kanflow-backend/internal/task/usecase"
	widgetdomain "kanflow-backend/internal/widget/domain"
	widgetRepo "kanflow-backend/internal/widget/repository"
	widgetUsecase "kanflow-backend/internal/widget/usecase"
	"kanflow-backend/pkg/config"
	"kanflow-backend/pkg/database"
	"kanflow-backend/pkg/fcm"
	"kanflow-backend/pkg/localstore"
	"kanflow-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.OneTimeCode{},
		&authdomain.DeviceToken{},
		&taskdomain.Task{},
		&integrationdomain.IntegrationRecord{},
		&widgetdomain.WidgetRecord{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Local store backs guest tasks, the session flag and the hidden-task list
	store, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		log.Fatal("Failed to open local store:", err)
	}
	defer store.Close()

	resolver := session.NewResolver(store)

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	deviceTokenRepo := authRepo.NewDeviceTokenRepository(db)
	localTaskRepo := taskRepo.NewLocalTaskRepository(store)
	remoteTaskRepo := taskRepo.NewGormTaskRepository(db)
	integrationRepository := integrationRepo.NewGormIntegrationRepository(db)
	blacklistRepo := integrationRepo.NewLocalBlacklistRepository(store)
	widgetStateRepo := widgetRepo.NewSwitchingStateRepository(
		resolver,
		widgetRepo.NewLocalStateRepository(store),
		widgetRepo.NewGormStateRepository(db),
	)

	// Initialize use cases (dependency injection)
	mailService := mailer.NewMailer(cfg)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, mailService, cfg)

	integrationUsecaseInstance := integrationUsecase.NewIntegrationUsecase(integrationRepository, blacklistRepo)

	// Provider sources read the GitLab and Sentry endpoints through runtime
	// getters so the settings API can repoint self-hosted instances
	sources := aggregator.DefaultSources(api.GetRuntimeGitLabBaseURL, api.GetRuntimeSentryBaseURL)
	externalAggregator := aggregator.New(blacklistRepo, sources...)

	taskUsecaseInstance := taskUsecase.NewTaskUsecase(
		resolver,
		localTaskRepo,
		remoteTaskRepo,
		integrationUsecaseInstance,
		externalAggregator,
		blacklistRepo,
	)

	quotesClient := widgetUsecase.NewQuotesClient("")
	widgetUsecaseInstance := widgetUsecase.NewWidgetUsecase(widgetStateRepo, integrationUsecaseInstance, quotesClient)

	// Initialize FCM client (optional, reminders are disabled without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push reminders disabled): %v", err)
		}
	} else {
		log.Println("[WARN] No Firebase credentials configured, push reminders disabled")
	}

	// Start the reminder scheduler against the backend task store
	if reminderRepo, ok := remoteTaskRepo.(taskRepo.ReminderRepository); ok {
		reminderScheduler := scheduler.NewReminderScheduler(reminderRepo, deviceTokenRepo, fcmClient)
		reminderScheduler.Start()
		defer reminderScheduler.Stop()
	}

	// Initialize HTTP handler
	handler := api.NewHandler(
		authUsecaseInstance,
		taskUsecaseInstance,
		integrationUsecaseInstance,
		widgetUsecaseInstance,
		resolver,
		cfg,
		deviceTokenRepo,
	)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := handler.Start(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
