package main

// @title City Tourism Backend API
// @version 1.0.0
// @description Бэкенд муниципальной туристической платформы: точки интереса города, таксономия типов/подтипов/удобств, пользователи с ролями, JWT-аутентификация, загрузка файлов и отправка писем по шаблонам.
// @description
// @description Основные возможности:
// @description - CRUD точек интереса с мягким удалением и восстановлением
// @description - Таксономия: типы (с ролями), подтипы, удобства
// @description - Аутентификация: login/refresh/logout, сброс пароля по почте
// @description - Загрузка изображений и файлов

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey bearer_token
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/config"
	httpDelivery "github.com/city-tourism-backend/internal/delivery/http"
	"github.com/city-tourism-backend/internal/delivery/http/handler"
	"github.com/city-tourism-backend/internal/infrastructure/mailer"
	"github.com/city-tourism-backend/internal/infrastructure/storage"
	"github.com/city-tourism-backend/internal/pkg/logger"
	"github.com/city-tourism-backend/internal/pkg/token"
	"github.com/city-tourism-backend/internal/repository/cache"
	"github.com/city-tourism-backend/internal/repository/postgres"
	"github.com/city-tourism-backend/internal/usecase"
	"github.com/city-tourism-backend/internal/worker"
	"github.com/city-tourism-backend/internal/worker/uploads"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting City Tourism Backend")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize infrastructure
	tokens, err := token.NewManager(&cfg.JWT)
	if err != nil {
		log.Fatal("Failed to initialize token manager", zap.Error(err))
	}

	mailClient := mailer.NewClient(&cfg.SMTP, log)
	diskStore := storage.NewDiskStore(&cfg.Uploads, log)

	// 7. Initialize repositories
	typeRepo := postgres.NewTypeRepository(db)
	subtypeRepo := postgres.NewSubtypeRepository(db)
	facilityRepo := postgres.NewFacilityRepository(db)
	pointRepo := postgres.NewCityPointRepository(db)
	userRepo := postgres.NewUserRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 8. Initialize use cases
	taxonomyCache := usecase.NewTaxonomyCache(cacheRepo, cfg.Cache.TaxonomyCacheTTL, log)

	typeUC := usecase.NewTypeUseCase(typeRepo, taxonomyCache, log)
	subtypeUC := usecase.NewSubtypeUseCase(subtypeRepo, typeRepo, taxonomyCache, log)
	facilityUC := usecase.NewFacilityUseCase(facilityRepo, subtypeRepo, taxonomyCache, log)
	pointUC := usecase.NewCityPointUseCase(pointRepo, typeRepo, subtypeRepo, facilityRepo, diskStore, log)
	userUC := usecase.NewUserUseCase(userRepo, typeRepo, log)
	authUC := usecase.NewAuthUseCase(userRepo, notificationRepo, tokens, mailClient, log)
	emailUC := usecase.NewEmailUseCase(mailClient, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers
	cityPointHandler := handler.NewCityPointHandler(pointUC, diskStore, log)
	typeHandler := handler.NewTypeHandler(typeUC, log)
	subtypeHandler := handler.NewSubtypeHandler(subtypeUC, log)
	facilityHandler := handler.NewFacilityHandler(facilityUC, log)
	userHandler := handler.NewUserHandler(userUC, log)
	authHandler := handler.NewAuthHandler(authUC, log)
	fileHandler := handler.NewFileHandler(diskStore, log)
	emailHandler := handler.NewEmailHandler(emailUC, log)

	log.Info("HTTP handlers initialized")

	// 10. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		tokens,
		cityPointHandler,
		typeHandler,
		subtypeHandler,
		facilityHandler,
		userHandler,
		authHandler,
		fileHandler,
		emailHandler,
	)

	// 11. Background workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(uploads.NewReconcileWorker(
		pointRepo,
		cfg.Uploads.Dir,
		cfg.Uploads.PublicURL,
		cfg.Uploads.ReconcileInterval,
		log,
	))
	if err := workerManager.Start(workerCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	workerCancel()
	if err := workerManager.Stop(); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
