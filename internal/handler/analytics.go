package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/repository"
	"github.com/williamanish-889/educlip-backend/internal/service"
)

type AnalyticsHandler interface {
	GetUserAnalytics(c *gin.Context)
	GetVideoAnalytics(c *gin.Context)
}

type analyticsHandler struct {
	analyticsService service.AnalyticsService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService, logger *zap.Logger) AnalyticsHandler {
	return &analyticsHandler{analyticsService: analyticsService, logger: logger}
}

// GetUserAnalytics handles GET /api/analytics/user/:id
func (h *analyticsHandler) GetUserAnalytics(c *gin.Context) {
	claims := claimsFromContext(c)

	analytics, err := h.analyticsService.GetUserAnalytics(claims, c.Param("id"))
	if err != nil {
		if !errors.Is(err, service.ErrForbidden) {
			h.logger.Error("Failed to get user analytics", zap.Error(err))
		}
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", analytics)
}

// GetVideoAnalytics handles GET /api/analytics/video/:id
func (h *analyticsHandler) GetVideoAnalytics(c *gin.Context) {
	analytics, err := h.analyticsService.GetVideoAnalytics(c.Param("id"))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.Error("Failed to get video analytics", zap.Error(err))
		}
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", analytics)
}
