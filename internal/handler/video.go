package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/models"
	"github.com/williamanish-889/educlip-backend/internal/repository"
	"github.com/williamanish-889/educlip-backend/internal/service"
)

type VideoHandler interface {
	Upload(c *gin.Context)
	GetStatus(c *gin.Context)
	GetTranscript(c *gin.Context)
	GetSummary(c *gin.Context)
	GetClips(c *gin.Context)
	List(c *gin.Context)
}

type videoHandler struct {
	videoService service.VideoService
	logger       *zap.Logger
}

func NewVideoHandler(videoService service.VideoService, logger *zap.Logger) VideoHandler {
	return &videoHandler{videoService: videoService, logger: logger}
}

func (h *videoHandler) Upload(c *gin.Context) {
	claims := claimsFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "video file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Upload failed")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read uploaded file", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Upload failed")
		return
	}

	video, err := h.videoService.Upload(
		claims.UserID,
		c.PostForm("title"),
		c.PostForm("description"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		if !errors.Is(err, service.ErrNotVideoFile) {
			h.logger.Error("Failed to upload video", zap.Error(err))
		}
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Video uploaded successfully", gin.H{
		"video_id": video.ID,
		"status":   video.Status,
		"title":    video.Title,
	})
}

func (h *videoHandler) GetStatus(c *gin.Context) {
	video, err := h.videoService.GetVideo(c.Param("id"))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.Error("Failed to get video", zap.Error(err))
		}
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"video_id": video.ID,
		"status":   video.Status,
		"progress": video.Progress,
		"title":    video.Title,
	})
}

func (h *videoHandler) GetTranscript(c *gin.Context) {
	transcript, err := h.videoService.GetTranscript(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Transcript not available")
			return
		}
		h.logger.Error("Failed to get transcript", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", transcript)
}

func (h *videoHandler) GetSummary(c *gin.Context) {
	summary, err := h.videoService.GetSummary(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Summary not available")
			return
		}
		h.logger.Error("Failed to get summary", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", summary)
}

func (h *videoHandler) GetClips(c *gin.Context) {
	videoID := c.Param("id")
	clips, err := h.videoService.ListClips(videoID)
	if err != nil {
		h.logger.Error("Failed to list clips", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"video_id": videoID,
		"clips":    clips,
		"count":    len(clips),
	})
}

func (h *videoHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)

	videos, err := h.videoService.ListByUser(claims.UserID)
	if err != nil {
		h.logger.Error("Failed to list videos", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	if videos == nil {
		videos = []models.Video{}
	}

	respondOK(c, http.StatusOK, "", gin.H{
		"videos": videos,
		"count":  len(videos),
	})
}
