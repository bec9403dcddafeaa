package repository

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/models"
)

// Transcript segments and summary lists are stored as JSONB columns; the
// artifacts are written once and never updated, so there is no partial-update
// concern.

type PostgresTranscriptRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewPostgresTranscriptRepository(db *sqlx.DB, log *zap.Logger) *PostgresTranscriptRepository {
	return &PostgresTranscriptRepository{db: db, log: log}
}

func (r *PostgresTranscriptRepository) Create(transcript *models.Transcript) error {
	segments, err := json.Marshal(transcript.Segments)
	if err != nil {
		return err
	}
	query := `INSERT INTO transcripts (video_id, full_text, segments, duration, language)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.Exec(query, transcript.VideoID, transcript.FullText, segments, transcript.Duration, transcript.Language)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresTranscriptRepository) GetByVideoID(videoID string) (*models.Transcript, error) {
	var row struct {
		VideoID  string  `db:"video_id"`
		FullText string  `db:"full_text"`
		Segments []byte  `db:"segments"`
		Duration float64 `db:"duration"`
		Language string  `db:"language"`
	}
	query := `SELECT video_id, full_text, segments, duration, language FROM transcripts WHERE video_id = $1`
	err := r.db.Get(&row, query, videoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	transcript := &models.Transcript{
		VideoID:  row.VideoID,
		FullText: row.FullText,
		Duration: row.Duration,
		Language: row.Language,
	}
	if err := json.Unmarshal(row.Segments, &transcript.Segments); err != nil {
		return nil, err
	}
	return transcript, nil
}

type PostgresSummaryRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewPostgresSummaryRepository(db *sqlx.DB, log *zap.Logger) *PostgresSummaryRepository {
	return &PostgresSummaryRepository{db: db, log: log}
}

func (r *PostgresSummaryRepository) Create(summary *models.Summary) error {
	concepts, err := json.Marshal(summary.KeyConcepts)
	if err != nil {
		return err
	}
	objectives, err := json.Marshal(summary.LearningObjectives)
	if err != nil {
		return err
	}
	topics, err := json.Marshal(summary.Topics)
	if err != nil {
		return err
	}
	query := `INSERT INTO summaries (video_id, executive_summary, key_concepts, learning_objectives, topics, difficulty_level)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.db.Exec(query, summary.VideoID, summary.ExecutiveSummary, concepts, objectives, topics, summary.DifficultyLevel)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresSummaryRepository) GetByVideoID(videoID string) (*models.Summary, error) {
	var row struct {
		VideoID            string `db:"video_id"`
		ExecutiveSummary   string `db:"executive_summary"`
		KeyConcepts        []byte `db:"key_concepts"`
		LearningObjectives []byte `db:"learning_objectives"`
		Topics             []byte `db:"topics"`
		DifficultyLevel    string `db:"difficulty_level"`
	}
	query := `SELECT video_id, executive_summary, key_concepts, learning_objectives, topics, difficulty_level
	          FROM summaries WHERE video_id = $1`
	err := r.db.Get(&row, query, videoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	summary := &models.Summary{
		VideoID:          row.VideoID,
		ExecutiveSummary: row.ExecutiveSummary,
		DifficultyLevel:  row.DifficultyLevel,
	}
	if err := json.Unmarshal(row.KeyConcepts, &summary.KeyConcepts); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(row.LearningObjectives, &summary.LearningObjectives); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(row.Topics, &summary.Topics); err != nil {
		return nil, err
	}
	return summary, nil
}

type PostgresClipRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewPostgresClipRepository(db *sqlx.DB, log *zap.Logger) *PostgresClipRepository {
	return &PostgresClipRepository{db: db, log: log}
}

func (r *PostgresClipRepository) ListByVideoID(videoID string) ([]models.Clip, error) {
	clips := make([]models.Clip, 0)
	query := `SELECT id, video_id, title, start_time, end_time, duration, importance_score, thumbnail_url, download_url
	          FROM clips WHERE video_id = $1 ORDER BY start_time`
	if err := r.db.Select(&clips, query, videoID); err != nil {
		return nil, err
	}
	return clips, nil
}
