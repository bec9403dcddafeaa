package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/williamanish-889/educlip-backend/internal/middleware"
	"github.com/williamanish-889/educlip-backend/internal/models"
	"github.com/williamanish-889/educlip-backend/internal/repository"
	"github.com/williamanish-889/educlip-backend/internal/service"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	StatusCode int         `json:"status_code,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message, StatusCode: status})
}

// respondServiceError maps known service and repository errors onto the HTTP
// taxonomy. Unexpected errors become a generic 500; the internal error text
// is logged by the caller, never echoed to the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrNotVideoFile):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "Not permitted")
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrUserAlreadyExists):
		respondError(c, http.StatusBadRequest, "Email or username already registered")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func claimsFromContext(c *gin.Context) *models.Claims {
	return c.MustGet(middleware.ClaimsKey).(*models.Claims)
}
