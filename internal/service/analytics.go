package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/models"
	"github.com/williamanish-889/educlip-backend/internal/repository"
)

var ErrForbidden = errors.New("not permitted")

// UserAnalytics aggregates a user's viewing activity. Watch tracking is not
// collected anywhere yet, so the numbers stay at their zero values.
type UserAnalytics struct {
	UserID                string   `json:"user_id"`
	TotalVideosWatched    int      `json:"total_videos_watched"`
	TotalWatchTime        int      `json:"total_watch_time"`
	TopicsCovered         []string `json:"topics_covered"`
	AverageCompletionRate float64  `json:"average_completion_rate"`
	RecentActivity        []string `json:"recent_activity"`
}

// VideoAnalytics aggregates engagement for a single video.
type VideoAnalytics struct {
	VideoID             string             `json:"video_id"`
	TotalViews          int                `json:"total_views"`
	UniqueViewers       int                `json:"unique_viewers"`
	AverageWatchTime    int                `json:"average_watch_time"`
	CompletionRate      float64            `json:"completion_rate"`
	ClipEngagement      map[string]float64 `json:"clip_engagement"`
	PeakEngagementTimes []float64          `json:"peak_engagement_times"`
}

type AnalyticsService interface {
	GetUserAnalytics(requestor *models.Claims, targetUserID string) (*UserAnalytics, error)
	GetVideoAnalytics(videoID string) (*VideoAnalytics, error)
}

type analyticsService struct {
	videos repository.VideoRepository
	logger *zap.Logger
}

func NewAnalyticsService(videos repository.VideoRepository, logger *zap.Logger) AnalyticsService {
	return &analyticsService{videos: videos, logger: logger}
}

// GetUserAnalytics enforces the permission rule: a user may only view their
// own analytics unless they hold the admin role.
func (s *analyticsService) GetUserAnalytics(requestor *models.Claims, targetUserID string) (*UserAnalytics, error) {
	if requestor.UserID != targetUserID && requestor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	return &UserAnalytics{
		UserID:         targetUserID,
		TopicsCovered:  []string{},
		RecentActivity: []string{},
	}, nil
}

func (s *analyticsService) GetVideoAnalytics(videoID string) (*VideoAnalytics, error) {
	if _, err := s.videos.GetByID(videoID); err != nil {
		return nil, err
	}

	return &VideoAnalytics{
		VideoID:             videoID,
		ClipEngagement:      map[string]float64{},
		PeakEngagementTimes: []float64{},
	}, nil
}
