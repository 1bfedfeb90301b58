package pets

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
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("you may only access your own pets")
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
	// OwnerUserID solo lo puede fijar staff; un owner siempre crea para sí.
	OwnerUserID string
	Name        string
	Species     string
	Breed       string
	WeightKg    float64
	BirthDate   *time.Time
}

func (s *Service) Create(ctx context.Context, actor users.Actor, in CreateInput) (Pet, error) {
	ownerID := strings.TrimSpace(in.OwnerUserID)

	if actor.IsStaff() {
		if ownerID == "" {
			return Pet{}, ErrInvalidInput
		}
	} else {
		// Un dueño solo crea mascotas para sí mismo.
		if ownerID != "" && ownerID != actor.UserID {
			return Pet{}, ErrForbidden
		}
		ownerID = actor.UserID
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.WeightKg <= 0 {
		return Pet{}, ErrInvalidInput
	}
	if in.BirthDate != nil && in.BirthDate.After(s.now()) {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerID,
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		WeightKg:    in.WeightKg,
		BirthDate:   in.BirthDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}

	s.log.Info("pet created", map[string]any{"pet_id": p.ID, "owner_id": ownerID})
	return p, nil
}

// GetByID aplica la regla de acceso: dueño de la mascota o staff.
func (s *Service) GetByID(ctx context.Context, actor users.Actor, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}

	if !actor.IsStaff() && p.OwnerUserID != actor.UserID {
		s.log.Warn("pet access denied", map[string]any{"pet_id": id, "actor_id": actor.UserID})
		return Pet{}, ErrForbidden
	}
	return p, nil
}

// ListVisible devuelve todas las mascotas para staff, solo las propias para
// un dueño.
func (s *Service) ListVisible(ctx context.Context, actor users.Actor) ([]Pet, error) {
	if actor.IsStaff() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByOwner(ctx, actor.UserID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string
	Species   *string
	Breed     *string
	WeightKg  *float64
	BirthDate *time.Time
	// ClearBirthDate permite limpiar la fecha ("birth_date": null).
	ClearBirthDate bool
}

func (s *Service) Update(ctx context.Context, actor users.Actor, id string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		if strings.TrimSpace(*in.Species) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Species = strings.TrimSpace(*in.Species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.WeightKg != nil {
		if *in.WeightKg <= 0 {
			return Pet{}, ErrInvalidInput
		}
		p.WeightKg = *in.WeightKg
	}
	if in.ClearBirthDate {
		p.BirthDate = nil
	} else if in.BirthDate != nil {
		if in.BirthDate.After(s.now()) {
			return Pet{}, ErrInvalidInput
		}
		p.BirthDate = in.BirthDate
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actor users.Actor, id string) error {
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("pet deleted", map[string]any{"pet_id": id, "actor_id": actor.UserID})
	return nil
}
