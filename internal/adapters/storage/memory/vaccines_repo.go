package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vet-clinic-api/internal/domain/vaccines"
)

type vaccinesRepo struct {
	mu   sync.RWMutex
	byID map[string]vaccines.Vaccine
}

func NewVaccinesRepo() vaccines.Repository {
	return &vaccinesRepo{
		byID: make(map[string]vaccines.Vaccine),
	}
}

func (r *vaccinesRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vaccine id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("vaccine already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccinesRepo) Update(ctx context.Context, v vaccines.Vaccine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; !exists {
		return ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccinesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *vaccinesRepo) GetByID(ctx context.Context, id string) (vaccines.Vaccine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return vaccines.Vaccine{}, ErrNotFound
	}
	return v, nil
}

func (r *vaccinesRepo) ListAll(ctx context.Context) ([]vaccines.Vaccine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccines.Vaccine, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
