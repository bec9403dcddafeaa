package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/handler"
	"github.com/williamanish-889/educlip-backend/internal/middleware"
	"github.com/williamanish-889/educlip-backend/internal/service"
)

type Server struct {
	router *gin.Engine
	logger *zap.Logger
}

func NewServer(
	authService service.AuthService,
	videoService service.VideoService,
	analyticsService service.AnalyticsService,
	tokens service.TokenService,
	logger *zap.Logger,
) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())

	s := &Server{
		router: router,
		logger: logger,
	}

	s.setupRoutes(authService, videoService, analyticsService, tokens)

	return s
}

func (s *Server) setupRoutes(
	authService service.AuthService,
	videoService service.VideoService,
	analyticsService service.AnalyticsService,
	tokens service.TokenService,
) {
	authHandler := handler.NewAuthHandler(authService, s.logger)
	videoHandler := handler.NewVideoHandler(videoService, s.logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, s.logger)

	// Liveness probe
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(tokens, s.logger))
	{
		authRequired.POST("/videos/upload", videoHandler.Upload)
		authRequired.GET("/videos", videoHandler.List)
		authRequired.GET("/videos/:id/status", videoHandler.GetStatus)
		authRequired.GET("/videos/:id/transcript", videoHandler.GetTranscript)
		authRequired.GET("/videos/:id/summary", videoHandler.GetSummary)
		authRequired.GET("/videos/:id/clips", videoHandler.GetClips)

		authRequired.GET("/analytics/user/:id", analyticsHandler.GetUserAnalytics)
		authRequired.GET("/analytics/video/:id", analyticsHandler.GetVideoAnalytics)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
