package repository

import (
	"sync"
	"time"

	"github.com/williamanish-889/educlip-backend/internal/models"
)

// In-memory implementations backed by mutex-guarded maps. They serve as the
// default storage backend and as the test double behind the same interfaces
// the Postgres implementations satisfy. Every method performs its read or
// update atomically with respect to other operations on the same store.

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return ErrDuplicate
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := u
	return &user, nil
}

func (r *MemoryUserRepository) UpdateLastLogin(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &at
	r.users[id] = u
	return nil
}

type MemoryVideoRepository struct {
	mu     sync.RWMutex
	videos map[string]models.Video
	order  []string
}

func NewMemoryVideoRepository() *MemoryVideoRepository {
	return &MemoryVideoRepository{videos: make(map[string]models.Video)}
}

func (r *MemoryVideoRepository) Create(video *models.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.videos[video.ID]; ok {
		return ErrDuplicate
	}
	r.videos[video.ID] = *video
	r.order = append(r.order, video.ID)
	return nil
}

func (r *MemoryVideoRepository) GetByID(id string) (*models.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.videos[id]
	if !ok {
		return nil, ErrNotFound
	}
	video := v
	return &video, nil
}

func (r *MemoryVideoRepository) ListByUser(userID string) ([]models.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	videos := make([]models.Video, 0)
	for _, id := range r.order {
		if v := r.videos[id]; v.UserID == userID {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

func (r *MemoryVideoRepository) UpdateStatus(id string, newStatus models.VideoStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.videos[id]
	if !ok {
		return ErrNotFound
	}
	if !v.Status.CanTransitionTo(newStatus) {
		return ErrInvalidTransition
	}
	v.Status = newStatus
	v.Progress = newStatus.Progress()
	r.videos[id] = v
	return nil
}

type MemoryTranscriptRepository struct {
	mu          sync.RWMutex
	transcripts map[string]models.Transcript
}

func NewMemoryTranscriptRepository() *MemoryTranscriptRepository {
	return &MemoryTranscriptRepository{transcripts: make(map[string]models.Transcript)}
}

func (r *MemoryTranscriptRepository) Create(transcript *models.Transcript) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transcripts[transcript.VideoID]; ok {
		return ErrDuplicate
	}
	r.transcripts[transcript.VideoID] = *transcript
	return nil
}

func (r *MemoryTranscriptRepository) GetByVideoID(videoID string) (*models.Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.transcripts[videoID]
	if !ok {
		return nil, ErrNotFound
	}
	transcript := t
	return &transcript, nil
}

type MemorySummaryRepository struct {
	mu        sync.RWMutex
	summaries map[string]models.Summary
}

func NewMemorySummaryRepository() *MemorySummaryRepository {
	return &MemorySummaryRepository{summaries: make(map[string]models.Summary)}
}

func (r *MemorySummaryRepository) Create(summary *models.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.summaries[summary.VideoID]; ok {
		return ErrDuplicate
	}
	r.summaries[summary.VideoID] = *summary
	return nil
}

func (r *MemorySummaryRepository) GetByVideoID(videoID string) (*models.Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.summaries[videoID]
	if !ok {
		return nil, ErrNotFound
	}
	summary := s
	return &summary, nil
}

type MemoryClipRepository struct {
	mu    sync.RWMutex
	clips map[string][]models.Clip
}

func NewMemoryClipRepository() *MemoryClipRepository {
	return &MemoryClipRepository{clips: make(map[string][]models.Clip)}
}

func (r *MemoryClipRepository) ListByVideoID(videoID string) ([]models.Clip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clips := make([]models.Clip, 0, len(r.clips[videoID]))
	clips = append(clips, r.clips[videoID]...)
	return clips, nil
}
