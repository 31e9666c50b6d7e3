package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateUserParams struct {
	Email        string
	Username     string
	PasswordHash string
}

// UserRow pairs the public user with the stored credential hash.
type UserRow struct {
	User         User
	PasswordHash string
}

// Store defines user persistence for the swipe API.
type Store interface {
	CreateUser(ctx context.Context, p CreateUserParams) (User, error)
	FindUserByLogin(ctx context.Context, login string) (UserRow, error)
}

// PostgresStore is the production implementation.
type PostgresStore struct {
	DB *pgxpool.Pool
}

func (s PostgresStore) CreateUser(ctx context.Context, p CreateUserParams) (User, error) {
	id := uuid.New()
	var u User
	q := `
INSERT INTO users (id, email, username, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING id::text, email, username, created_at;
`
	err := s.DB.QueryRow(ctx, q, id, p.Email, p.Username, p.PasswordHash).Scan(&u.ID, &u.Email, &u.Username, &u.CreatedAt)
	if err != nil {
		// unique violation
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrConflict
		}
		return User{}, err
	}
	return u, nil
}

func (s PostgresStore) FindUserByLogin(ctx context.Context, login string) (UserRow, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return UserRow{}, ErrNotFound
	}

	q := `
SELECT id::text, email, username, password_hash, created_at
FROM users
WHERE lower(email) = lower($1) OR lower(username) = lower($1)
LIMIT 1;
`
	var row UserRow
	err := s.DB.QueryRow(ctx, q, login).Scan(&row.User.ID, &row.User.Email, &row.User.Username, &row.PasswordHash, &row.User.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRow{}, ErrNotFound
		}
		return UserRow{}, err
	}
	return row, nil
}
