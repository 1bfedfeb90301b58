package vaccinations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("vaccination record not found")
	ErrStaffOnly    = errors.New("only staff may record vaccinations")
	ErrForbidden    = errors.New("you may only access vaccinations of your own pets")
)

type Service struct {
	repo     Repository
	pets     PetDirectory
	vaccines VaccineCatalog
	cfg      Config
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, pets PetDirectory, vaccines VaccineCatalog, cfg Config, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		pets:     pets,
		vaccines: vaccines,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Status clasifica un registro con la configuración del service.
func (s *Service) Status(v Vaccination, now time.Time) DoseStatus {
	return s.cfg.Classify(v, now)
}

type RecordInput struct {
	PetID     string
	VaccineID string
	AppliedAt time.Time
	Batch     string
	Notes     string
}

// Record registra una aplicación (solo staff). La próxima dosis se calcula
// como fecha de aplicación + intervalo de la vacuna.
func (s *Service) Record(ctx context.Context, actor users.Actor, in RecordInput) (Vaccination, error) {
	if !actor.IsStaff() {
		s.log.Warn("vaccination record denied", map[string]any{"actor_id": actor.UserID})
		return Vaccination{}, ErrStaffOnly
	}

	petID := strings.TrimSpace(in.PetID)
	vaccineID := strings.TrimSpace(in.VaccineID)

	if petID == "" || vaccineID == "" {
		return Vaccination{}, ErrInvalidInput
	}
	if in.AppliedAt.IsZero() {
		return Vaccination{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Batch) == "" {
		return Vaccination{}, ErrInvalidInput
	}

	now := s.now()
	if dateOnly(in.AppliedAt).After(dateOnly(now)) {
		return Vaccination{}, fmt.Errorf("%w: application date cannot be in the future", ErrInvalidInput)
	}

	// Validar referencias
	if _, err := s.pets.OwnerOf(ctx, petID); err != nil {
		return Vaccination{}, fmt.Errorf("%w: pet %s", ErrInvalidInput, petID)
	}
	interval, err := s.vaccines.IntervalDays(ctx, vaccineID)
	if err != nil {
		return Vaccination{}, fmt.Errorf("%w: vaccine %s", ErrInvalidInput, vaccineID)
	}

	applied := dateOnly(in.AppliedAt)
	nextDue := applied.AddDate(0, 0, interval)

	v := Vaccination{
		ID:              uuid.NewString(),
		PetID:           petID,
		VaccineID:       vaccineID,
		AppliedByUserID: actor.UserID,
		AppliedAt:       applied,
		NextDueAt:       &nextDue,
		Batch:           strings.TrimSpace(in.Batch),
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccination{}, err
	}

	s.log.Info("vaccination recorded", map[string]any{
		"vaccination_id": v.ID,
		"pet_id":         petID,
		"vaccine_id":     vaccineID,
		"next_due":       nextDue.Format("2006-01-02"),
	})
	return v, nil
}

// GetByID aplica visibilidad: staff ve todo, un dueño solo registros de sus
// mascotas.
func (s *Service) GetByID(ctx context.Context, actor users.Actor, id string) (Vaccination, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, ErrNotFound
	}

	if !actor.IsStaff() {
		ownerID, err := s.pets.OwnerOf(ctx, v.PetID)
		if err != nil || ownerID != actor.UserID {
			return Vaccination{}, ErrForbidden
		}
	}
	return v, nil
}

// ListVisible devuelve el historial completo para staff; para un dueño, los
// registros de sus mascotas. Ordenado por fecha de aplicación descendente.
func (s *Service) ListVisible(ctx context.Context, actor users.Actor) ([]Vaccination, error) {
	if actor.IsStaff() {
		items, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		sortByAppliedDesc(items)
		return items, nil
	}

	petIDs, err := s.pets.ListOwnedPetIDs(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]Vaccination, 0)
	for _, petID := range petIDs {
		items, err := s.repo.ListByPet(ctx, petID)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}

	sortByAppliedDesc(out)
	return out, nil
}

// ListByPet devuelve el historial de una mascota (dueño o staff).
func (s *Service) ListByPet(ctx context.Context, actor users.Actor, petID string) ([]Vaccination, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}

	ownerID, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		return nil, ErrNotFound
	}
	if !actor.IsStaff() && ownerID != actor.UserID {
		return nil, ErrForbidden
	}

	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	sortByAppliedDesc(items)
	return items, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	VaccineID *string
	AppliedAt *time.Time
	Batch     *string
	Notes     *string
}

// Update corrige un registro (solo staff). Si cambia la vacuna o la fecha
// de aplicación, la próxima dosis se recalcula.
func (s *Service) Update(ctx context.Context, actor users.Actor, id string, in UpdateInput) (Vaccination, error) {
	if !actor.IsStaff() {
		return Vaccination{}, ErrStaffOnly
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, ErrNotFound
	}

	recompute := false

	if in.VaccineID != nil {
		vaccineID := strings.TrimSpace(*in.VaccineID)
		if vaccineID == "" {
			return Vaccination{}, ErrInvalidInput
		}
		v.VaccineID = vaccineID
		recompute = true
	}
	if in.AppliedAt != nil {
		if in.AppliedAt.IsZero() {
			return Vaccination{}, ErrInvalidInput
		}
		if dateOnly(*in.AppliedAt).After(dateOnly(s.now())) {
			return Vaccination{}, fmt.Errorf("%w: application date cannot be in the future", ErrInvalidInput)
		}
		v.AppliedAt = dateOnly(*in.AppliedAt)
		recompute = true
	}
	if in.Batch != nil {
		if strings.TrimSpace(*in.Batch) == "" {
			return Vaccination{}, ErrInvalidInput
		}
		v.Batch = strings.TrimSpace(*in.Batch)
	}
	if in.Notes != nil {
		v.Notes = strings.TrimSpace(*in.Notes)
	}

	if recompute {
		interval, err := s.vaccines.IntervalDays(ctx, v.VaccineID)
		if err != nil {
			return Vaccination{}, fmt.Errorf("%w: vaccine %s", ErrInvalidInput, v.VaccineID)
		}
		nextDue := v.AppliedAt.AddDate(0, 0, interval)
		v.NextDueAt = &nextDue
	}

	v.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, actor users.Actor, id string) error {
	if !actor.IsStaff() {
		return ErrStaffOnly
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("vaccination deleted", map[string]any{"vaccination_id": id, "actor_id": actor.UserID})
	return nil
}

// ListUpcoming devuelve los registros visibles con estado due_soon,
// ordenados por próxima dosis ascendente.
func (s *Service) ListUpcoming(ctx context.Context, actor users.Actor) ([]Vaccination, error) {
	visible, err := s.ListVisible(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.cfg.Upcoming(visible, s.now()), nil
}

// ListOverdue devuelve los registros visibles vencidos, el más vencido
// primero.
func (s *Service) ListOverdue(ctx context.Context, actor users.Actor) ([]Vaccination, error) {
	visible, err := s.ListVisible(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.cfg.Overdue(visible, s.now()), nil
}

func sortByAppliedDesc(items []Vaccination) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AppliedAt.After(items[j].AppliedAt)
	})
}
