package main

import (
	"log"

	api "chorehub-backend/cmd/api"
	authdomain "chorehub-backend/internal/auth/domain"
	authRepo "chorehub-backend/internal/auth/repository"
	authUsecase "chorehub-backend/internal/auth/usecase"
	hhdomain "chorehub-backend/internal/household/domain"
	hhRepo "chorehub-backend/internal/household/repository"
	hhUsecase "chorehub-backend/internal/household/usecase"
	"chorehub-backend/internal/notification"
	taskdomain "chorehub-backend/internal/task/domain"
	taskRepo "chorehub-backend/internal/task/repository"
	"chorehub-backend/internal/task/scheduler"
	taskUsecase "chorehub-backend/internal/task/usecase"
	"chorehub-backend/pkg/config"
	"chorehub-backend/pkg/database"
	"chorehub-backend/pkg/fcm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.FCMToken{},
		&hhdomain.Household{},
		&hhdomain.Category{},
		&taskdomain.Task{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	fcmTokenRepo := authRepo.NewFCMTokenRepository(db)
	householdRepo := hhRepo.NewHouseholdRepository(db)
	categoryRepo := hhRepo.NewCategoryRepository(db)
	taskRepository := taskRepo.NewGormTaskRepository(db)

	// Initialize use cases
	authUc := authUsecase.NewAuthUsecase(userRepo, cfg)
	householdUc := hhUsecase.NewHouseholdUsecase(householdRepo, categoryRepo, userRepo)
	taskUc := taskUsecase.NewTaskUsecase(taskRepository, householdUc, userRepo, cfg.ArchiveRetention)

	// New accounts get a private household with default categories
	authUc.SetBootstrapCallback(householdUc.BootstrapPrivateHousehold)

	// Category deletion is rejected while tasks still reference it
	householdUc.SetTaskCounter(taskRepository)

	// Initialize FCM client (optional, sweeper runs without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		}
	} else {
		log.Printf("[WARN] No Firebase credentials configured, push notifications disabled")
	}

	// Start the deadline sweeper
	dispatcher := notification.NewDispatcher(userRepo, fcmTokenRepo, fcmClient)
	sweeper := scheduler.NewDeadlineSweeper(taskRepository, dispatcher, cfg.SweepInterval)
	if err := sweeper.Start(); err != nil {
		log.Fatal("Failed to start deadline sweeper:", err)
	}
	defer sweeper.Stop()

	// Initialize HTTP handler and start server
	handler := api.NewHandler(authUc, householdUc, taskUc, fcmTokenRepo, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
