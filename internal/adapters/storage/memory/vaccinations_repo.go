package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vet-clinic-api/internal/domain/vaccinations"
)

type vaccinationsRepo struct {
	mu   sync.RWMutex
	byID map[string]vaccinations.Vaccination
}

func NewVaccinationsRepo() vaccinations.Repository {
	return &vaccinationsRepo{
		byID: make(map[string]vaccinations.Vaccination),
	}
}

func (r *vaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vaccination id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("vaccination already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccinationsRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; !exists {
		return ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccinationsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *vaccinationsRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return vaccinations.Vaccination{}, ErrNotFound
	}
	return v, nil
}

func (r *vaccinationsRepo) ListAll(ctx context.Context) ([]vaccinations.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}
	return out, nil
}

func (r *vaccinationsRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	return out, nil
}
