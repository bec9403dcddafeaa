package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/models"
)

type PostgresUserRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewPostgresUserRepository(db *sqlx.DB, log *zap.Logger) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, log: log}
}

func (r *PostgresUserRepository) Create(user *models.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, role, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(query, user.ID, user.Username, user.Email, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, role, created_at, last_login_at FROM users WHERE email = $1`
	err := r.db.Get(&user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, role, created_at, last_login_at FROM users WHERE id = $1`
	err := r.db.Get(&user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) UpdateLastLogin(id string, at time.Time) error {
	res, err := r.db.Exec(`UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
