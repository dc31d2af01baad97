package repository

import (
	"context"
	"database/sql"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
	"github.com/stavrosm/city-clinic/records-service/internal/core/ports"
)

type UserRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns (nil, nil) when no account matches.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(
		ctx,
		"SELECT user_id, username, password_hash, role, created_at, last_login FROM users WHERE username = $1",
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return &user, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE users SET last_login = NOW() WHERE user_id = $1",
		userID,
	)
	return err
}
