package vaccines

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("vaccine not found")
	ErrStaffOnly    = errors.New("only staff may manage the vaccine catalog")
)

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name         string
	Manufacturer string
	Price        float64
	IntervalDays int
	Description  string
}

func (s *Service) Create(ctx context.Context, actor users.Actor, in CreateInput) (Vaccine, error) {
	if !actor.IsStaff() {
		s.log.Warn("vaccine create denied", map[string]any{"actor_id": actor.UserID})
		return Vaccine{}, ErrStaffOnly
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Manufacturer) == "" {
		return Vaccine{}, ErrInvalidInput
	}
	if in.Price <= 0 {
		return Vaccine{}, ErrInvalidInput
	}
	if in.IntervalDays <= 0 {
		return Vaccine{}, ErrInvalidInput
	}

	now := s.now()
	v := Vaccine{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		Price:        in.Price,
		IntervalDays: in.IntervalDays,
		Description:  strings.TrimSpace(in.Description),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccine{}, err
	}

	s.log.Info("vaccine created", map[string]any{"vaccine_id": v.ID, "name": v.Name})
	return v, nil
}

// GetByID no exige rol: cualquier usuario autenticado puede consultar el
// catálogo.
func (s *Service) GetByID(ctx context.Context, id string) (Vaccine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Vaccine{}, ErrInvalidInput
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vaccine{}, ErrNotFound
	}
	return v, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Vaccine, error) {
	return s.repo.ListAll(ctx)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string
	Manufacturer *string
	Price        *float64
	IntervalDays *int
	Description  *string
}

func (s *Service) Update(ctx context.Context, actor users.Actor, id string, in UpdateInput) (Vaccine, error) {
	if !actor.IsStaff() {
		return Vaccine{}, ErrStaffOnly
	}

	v, err := s.GetByID(ctx, id)
	if err != nil {
		return Vaccine{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Vaccine{}, ErrInvalidInput
		}
		v.Name = strings.TrimSpace(*in.Name)
	}
	if in.Manufacturer != nil {
		if strings.TrimSpace(*in.Manufacturer) == "" {
			return Vaccine{}, ErrInvalidInput
		}
		v.Manufacturer = strings.TrimSpace(*in.Manufacturer)
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return Vaccine{}, ErrInvalidInput
		}
		v.Price = *in.Price
	}
	if in.IntervalDays != nil {
		if *in.IntervalDays <= 0 {
			return Vaccine{}, ErrInvalidInput
		}
		v.IntervalDays = *in.IntervalDays
	}
	if in.Description != nil {
		v.Description = strings.TrimSpace(*in.Description)
	}

	v.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, v); err != nil {
		return Vaccine{}, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, actor users.Actor, id string) error {
	if !actor.IsStaff() {
		return ErrStaffOnly
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("vaccine deleted", map[string]any{"vaccine_id": id, "actor_id": actor.UserID})
	return nil
}
