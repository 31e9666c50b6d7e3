package accounts

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is a development and test implementation.
type InMemoryStore struct {
	mu    sync.Mutex
	users map[string]UserRow // user id -> row
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[string]UserRow)}
}

func (s *InMemoryStore) CreateUser(_ context.Context, p CreateUserParams) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.users {
		if strings.EqualFold(row.User.Email, p.Email) || strings.EqualFold(row.User.Username, p.Username) {
			return User{}, ErrConflict
		}
	}
	u := User{
		ID:        uuid.NewString(),
		Email:     p.Email,
		Username:  p.Username,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = UserRow{User: u, PasswordHash: p.PasswordHash}
	return u, nil
}

func (s *InMemoryStore) FindUserByLogin(_ context.Context, login string) (UserRow, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return UserRow{}, ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.users {
		if strings.EqualFold(row.User.Email, login) || strings.EqualFold(row.User.Username, login) {
			return row, nil
		}
	}
	return UserRow{}, ErrNotFound
}
