package repository

import (
	"errors"
	"time"

	"github.com/williamanish-889/educlip-backend/internal/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("record already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	UpdateLastLogin(id string, at time.Time) error
}

type VideoRepository interface {
	Create(video *models.Video) error
	GetByID(id string) (*models.Video, error)
	ListByUser(userID string) ([]models.Video, error)
	// UpdateStatus moves the video to newStatus and sets the canonical
	// progress for that state. Transitions the lifecycle forbids are
	// rejected with ErrInvalidTransition.
	UpdateStatus(id string, newStatus models.VideoStatus) error
}

type TranscriptRepository interface {
	Create(transcript *models.Transcript) error
	GetByVideoID(videoID string) (*models.Transcript, error)
}

type SummaryRepository interface {
	Create(summary *models.Summary) error
	GetByVideoID(videoID string) (*models.Summary, error)
}

type ClipRepository interface {
	ListByVideoID(videoID string) ([]models.Clip, error)
}
