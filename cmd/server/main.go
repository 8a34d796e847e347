package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"team-hub.backend/internal/config"
	"team-hub.backend/internal/infrastructure/jobs"
	"team-hub.backend/internal/infrastructure/repositories"
	"team-hub.backend/internal/interfaces/http/handlers"
	"team-hub.backend/internal/interfaces/http/middleware"
	"team-hub.backend/internal/realtime"
	"team-hub.backend/internal/usecases"
	"team-hub.backend/pkg/jwt"
	"team-hub.backend/pkg/logger"
	"team-hub.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	memberRepo := repositories.NewTeamMemberRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	snapshotRepo := repositories.NewSnapshotRepository(db)
	invitationRepo := repositories.NewInvitationRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Realtime plumbing: the bus fans database change events out to every
	// connected websocket session.
	bus := realtime.NewRedisBus(redis.GetClient())
	presence := realtime.NewPresenceTracker()

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	teamUsecase := usecases.NewTeamUsecase(teamRepo, memberRepo, uow, bus)
	chatUsecase := usecases.NewChatUsecase(chatRepo, memberRepo, bus)
	snapshotUsecase := usecases.NewSnapshotUsecase(snapshotRepo, memberRepo)
	invitationUsecase := usecases.NewInvitationUsecase(invitationRepo, memberRepo)
	aiUsecase := usecases.NewAIUsecase(cfg.AI)

	synchronizer := realtime.NewSynchronizer(teamUsecase)
	hub := realtime.NewHub(synchronizer, presence, bus)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	teamHandler := handlers.NewTeamHandler(teamUsecase)
	chatHandler := handlers.NewChatHandler(chatUsecase)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotUsecase)
	invitationHandler := handlers.NewInvitationHandler(invitationUsecase)
	aiHandler := handlers.NewAIHandler(aiUsecase)
	wsHandler := handlers.NewWSHandler(hub)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background work
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := hub.Run(ctx); err != nil {
			logger.Error(ctx, "Realtime hub stopped", zap.Error(err))
		}
	}()

	sweepJob := jobs.NewInvitationSweepJob(invitationRepo, cfg.Jobs.InvitationMaxAge, cfg.Jobs.InvitationInterval)
	go sweepJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       authHandler,
		teamHandler:       teamHandler,
		chatHandler:       chatHandler,
		snapshotHandler:   snapshotHandler,
		invitationHandler: invitationHandler,
		aiHandler:         aiHandler,
		wsHandler:         wsHandler,
		authMiddleware:    authMiddleware,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		sweepJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Team Hub Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
