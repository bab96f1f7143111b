package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, email, password_hash, created_at)
VALUES ($1, $2, $3, $4, now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
	)
	if err != nil {
		// Unique violations surface as typed errors so the handler can
		// return a 400 instead of a 500.
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "users_username") {
			return ErrUsernameExists
		}
		if strings.Contains(msg, "users_email") {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE lower(username) = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, username))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE lower(email) = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}
