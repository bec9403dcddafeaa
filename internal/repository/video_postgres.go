package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/models"
)

type PostgresVideoRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewPostgresVideoRepository(db *sqlx.DB, log *zap.Logger) *PostgresVideoRepository {
	return &PostgresVideoRepository{db: db, log: log}
}

func (r *PostgresVideoRepository) Create(video *models.Video) error {
	query := `INSERT INTO videos (id, user_id, title, description, file_path, status, progress, uploaded_at, file_size)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(query,
		video.ID, video.UserID, video.Title, video.Description,
		video.FilePath, video.Status, video.Progress, video.UploadedAt, video.FileSize)
	return err
}

func (r *PostgresVideoRepository) GetByID(id string) (*models.Video, error) {
	var video models.Video
	query := `SELECT id, user_id, title, description, file_path, status, progress, uploaded_at, file_size
	          FROM videos WHERE id = $1`
	err := r.db.Get(&video, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *PostgresVideoRepository) ListByUser(userID string) ([]models.Video, error) {
	videos := make([]models.Video, 0)
	query := `SELECT id, user_id, title, description, file_path, status, progress, uploaded_at, file_size
	          FROM videos WHERE user_id = $1 ORDER BY uploaded_at`
	if err := r.db.Select(&videos, query, userID); err != nil {
		return nil, err
	}
	return videos, nil
}

// UpdateStatus advances the video inside a transaction. The current row is
// locked so that the transition check and the write are atomic.
func (r *PostgresVideoRepository) UpdateStatus(id string, newStatus models.VideoStatus) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current models.VideoStatus
	err = tx.Get(&current, `SELECT status FROM videos WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if !current.CanTransitionTo(newStatus) {
		return ErrInvalidTransition
	}

	_, err = tx.Exec(`UPDATE videos SET status = $1, progress = $2 WHERE id = $3`,
		newStatus, newStatus.Progress(), id)
	if err != nil {
		return err
	}

	return tx.Commit()
}
