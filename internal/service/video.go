package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/models"
	"github.com/williamanish-889/educlip-backend/internal/repository"
	"github.com/williamanish-889/educlip-backend/internal/storage"
)

var ErrNotVideoFile = errors.New("file must be a video")

// PipelineLauncher starts the background processing run for a freshly
// uploaded video. Implemented by pipeline.Processor.
type PipelineLauncher interface {
	Launch(ctx context.Context, videoID string) <-chan error
}

type VideoService interface {
	Upload(userID, title, description, filename, contentType string, data []byte) (*models.Video, error)
	GetVideo(id string) (*models.Video, error)
	ListByUser(userID string) ([]models.Video, error)
	GetTranscript(videoID string) (*models.Transcript, error)
	GetSummary(videoID string) (*models.Summary, error)
	ListClips(videoID string) ([]models.Clip, error)
}

type videoService struct {
	videos      repository.VideoRepository
	transcripts repository.TranscriptRepository
	summaries   repository.SummaryRepository
	clips       repository.ClipRepository
	content     storage.ContentStore
	pipeline    PipelineLauncher
	logger      *zap.Logger
}

func NewVideoService(
	videos repository.VideoRepository,
	transcripts repository.TranscriptRepository,
	summaries repository.SummaryRepository,
	clips repository.ClipRepository,
	content storage.ContentStore,
	pipeline PipelineLauncher,
	logger *zap.Logger,
) VideoService {
	return &videoService{
		videos:      videos,
		transcripts: transcripts,
		summaries:   summaries,
		clips:       clips,
		content:     content,
		pipeline:    pipeline,
		logger:      logger,
	}
}

// Upload stores the file, inserts the video record in its initial state and
// schedules the processing run. The record is written before the run starts,
// so a status query issued right after upload always observes
// processing/0. The run itself is fire-and-forget: its completion channel is
// discarded here and failures surface only through the status field.
func (s *videoService) Upload(userID, title, description, filename, contentType string, data []byte) (*models.Video, error) {
	if !strings.HasPrefix(contentType, "video/") {
		return nil, ErrNotVideoFile
	}

	videoID := uuid.NewString()
	if err := s.content.Write(videoID, filename, data); err != nil {
		s.logger.Error("Failed to store uploaded file", zap.String("video_id", videoID), zap.Error(err))
		return nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}

	if title == "" {
		title = filename
	}

	video := &models.Video{
		ID:          videoID,
		UserID:      userID,
		Title:       title,
		Description: description,
		FilePath:    filename,
		Status:      models.StatusProcessing,
		Progress:    models.StatusProcessing.Progress(),
		UploadedAt:  time.Now().UTC(),
		FileSize:    int64(len(data)),
	}
	if err := s.videos.Create(video); err != nil {
		s.logger.Error("Failed to create video record", zap.String("video_id", videoID), zap.Error(err))
		return nil, fmt.Errorf("failed to create video record: %w", err)
	}

	s.pipeline.Launch(context.Background(), videoID)

	s.logger.Info("Video uploaded", zap.String("video_id", videoID), zap.String("user_id", userID))
	return video, nil
}

func (s *videoService) GetVideo(id string) (*models.Video, error) {
	return s.videos.GetByID(id)
}

func (s *videoService) ListByUser(userID string) ([]models.Video, error) {
	return s.videos.ListByUser(userID)
}

func (s *videoService) GetTranscript(videoID string) (*models.Transcript, error) {
	return s.transcripts.GetByVideoID(videoID)
}

func (s *videoService) GetSummary(videoID string) (*models.Summary, error) {
	return s.summaries.GetByVideoID(videoID)
}

func (s *videoService) ListClips(videoID string) ([]models.Clip, error) {
	return s.clips.ListByVideoID(videoID)
}
