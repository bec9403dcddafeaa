package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/config"
	"github.com/williamanish-889/educlip-backend/internal/pipeline"
	"github.com/williamanish-889/educlip-backend/internal/repository"
	"github.com/williamanish-889/educlip-backend/internal/server"
	"github.com/williamanish-889/educlip-backend/internal/service"
	"github.com/williamanish-889/educlip-backend/internal/storage"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	if p := os.Getenv("EDUCLIP_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Pick the storage backend
	var (
		userRepo       repository.UserRepository
		videoRepo      repository.VideoRepository
		transcriptRepo repository.TranscriptRepository
		summaryRepo    repository.SummaryRepository
		clipRepo       repository.ClipRepository
	)
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		repository.MigrateDB(db, logger)

		userRepo = repository.NewPostgresUserRepository(db, logger)
		videoRepo = repository.NewPostgresVideoRepository(db, logger)
		transcriptRepo = repository.NewPostgresTranscriptRepository(db, logger)
		summaryRepo = repository.NewPostgresSummaryRepository(db, logger)
		clipRepo = repository.NewPostgresClipRepository(db, logger)
	case "memory":
		userRepo = repository.NewMemoryUserRepository()
		videoRepo = repository.NewMemoryVideoRepository()
		transcriptRepo = repository.NewMemoryTranscriptRepository()
		summaryRepo = repository.NewMemorySummaryRepository()
		clipRepo = repository.NewMemoryClipRepository()
	default:
		logger.Fatal("Unknown storage backend", zap.String("backend", cfg.Storage.Backend))
	}

	// File store for uploaded video bytes
	contentStore, err := storage.NewFSContentStore(cfg.Storage.UploadDir)
	if err != nil {
		logger.Fatal("Failed to initialize content store", zap.Error(err))
	}

	// Processing pipeline, one run per uploaded video
	processor := pipeline.NewProcessor(videoRepo, transcriptRepo, summaryRepo, logger, cfg.Pipeline.StageDelay)

	// Services
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, logger)
	videoService := service.NewVideoService(videoRepo, transcriptRepo, summaryRepo, clipRepo, contentStore, processor, logger)
	analyticsService := service.NewAnalyticsService(videoRepo, logger)

	// Initialize and run the server
	srv := server.NewServer(authService, videoService, analyticsService, tokens, logger)
	srv.Run(cfg.Server.Port)
}
