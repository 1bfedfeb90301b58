package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vet-clinic-api/internal/domain/users"
)

var (
	ErrNotFound = errors.New("not found")
)

type usersRepo struct {
	mu         sync.RWMutex
	byID       map[string]users.User
	byUsername map[string]string // username -> id
}

func NewUsersRepo() users.Repository {
	return &usersRepo{
		byID:       make(map[string]users.User),
		byUsername: make(map[string]string),
	}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}
	if _, exists := r.byUsername[u.Username]; exists {
		return errors.New("username already exists")
	}

	r.byID[u.ID] = u
	r.byUsername[u.Username] = u.ID
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return r.byID[id], nil
}
