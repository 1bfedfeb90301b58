package vaccinations

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/platform/logger"
)

type fakeRepo struct {
	items map[string]Vaccination
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Vaccination{}}
}

func (r *fakeRepo) Create(_ context.Context, v Vaccination) error {
	r.items[v.ID] = v
	return nil
}

func (r *fakeRepo) Update(_ context.Context, v Vaccination) error {
	if _, ok := r.items[v.ID]; !ok {
		return errors.New("not found")
	}
	r.items[v.ID] = v
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (Vaccination, error) {
	v, ok := r.items[id]
	if !ok {
		return Vaccination{}, errors.New("not found")
	}
	return v, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]Vaccination, error) {
	out := make([]Vaccination, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeRepo) ListByPet(_ context.Context, petID string) ([]Vaccination, error) {
	out := make([]Vaccination, 0)
	for _, v := range r.items {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	return out, nil
}

// fakePets mapea mascota -> dueño.
type fakePets struct {
	owners map[string]string
}

func (d *fakePets) OwnerOf(_ context.Context, petID string) (string, error) {
	owner, ok := d.owners[petID]
	if !ok {
		return "", errors.New("pet not found")
	}
	return owner, nil
}

func (d *fakePets) ListOwnedPetIDs(_ context.Context, ownerUserID string) ([]string, error) {
	out := make([]string, 0)
	for petID, owner := range d.owners {
		if owner == ownerUserID {
			out = append(out, petID)
		}
	}
	return out, nil
}

// fakeCatalog mapea vacuna -> intervalo en días.
type fakeCatalog struct {
	intervals map[string]int
}

func (c *fakeCatalog) IntervalDays(_ context.Context, vaccineID string) (int, error) {
	days, ok := c.intervals[vaccineID]
	if !ok {
		return 0, errors.New("vaccine not found")
	}
	return days, nil
}

var (
	staff  = users.Actor{UserID: "staff-1", Role: users.RoleStaff}
	owner1 = users.Actor{UserID: "owner-1", Role: users.RoleOwner}
	owner2 = users.Actor{UserID: "owner-2", Role: users.RoleOwner}
)

func newTestService(t *testing.T, now time.Time) (*Service, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	pets := &fakePets{owners: map[string]string{
		"pet-a": "owner-1",
		"pet-b": "owner-2",
	}}
	catalog := &fakeCatalog{intervals: map[string]int{
		"vac-annual": 365,
		"vac-month":  30,
	}}

	svc := NewService(repo, pets, catalog, Config{DueSoonWindowDays: 7}, logger.Nop())
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestRecord_ComputesNextDue(t *testing.T) {
	now := date(2023, 6, 1)
	svc, _ := newTestService(t, now)

	v, err := svc.Record(context.Background(), staff, RecordInput{
		PetID:     "pet-a",
		VaccineID: "vac-annual",
		AppliedAt: date(2023, 1, 1),
		Batch:     "L-001",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if v.NextDueAt == nil {
		t.Fatal("NextDueAt not computed")
	}
	if want := date(2024, 1, 1); !v.NextDueAt.Equal(want) {
		t.Fatalf("next due = %s, want %s", v.NextDueAt.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	if v.AppliedByUserID != staff.UserID {
		t.Fatalf("applied by = %s, want %s", v.AppliedByUserID, staff.UserID)
	}
}

func TestRecord_OwnerDenied(t *testing.T) {
	svc, repo := newTestService(t, date(2023, 6, 1))

	_, err := svc.Record(context.Background(), owner1, RecordInput{
		PetID:     "pet-a",
		VaccineID: "vac-annual",
		AppliedAt: date(2023, 1, 1),
		Batch:     "L-001",
	})
	if !errors.Is(err, ErrStaffOnly) {
		t.Fatalf("err = %v, want ErrStaffOnly", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("record persisted despite denial")
	}
}

func TestRecord_Validation(t *testing.T) {
	svc, _ := newTestService(t, date(2023, 6, 1))
	ctx := context.Background()

	base := RecordInput{
		PetID:     "pet-a",
		VaccineID: "vac-annual",
		AppliedAt: date(2023, 1, 1),
		Batch:     "L-001",
	}

	cases := []struct {
		name   string
		mangle func(in *RecordInput)
	}{
		{"missing pet", func(in *RecordInput) { in.PetID = " " }},
		{"missing vaccine", func(in *RecordInput) { in.VaccineID = "" }},
		{"missing batch", func(in *RecordInput) { in.Batch = "" }},
		{"future application date", func(in *RecordInput) { in.AppliedAt = date(2023, 6, 2) }},
		{"unknown pet", func(in *RecordInput) { in.PetID = "pet-zzz" }},
		{"unknown vaccine", func(in *RecordInput) { in.VaccineID = "vac-zzz" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mangle(&in)
			if _, err := svc.Record(ctx, staff, in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestRecord_SameDayApplicationAllowed(t *testing.T) {
	// Aplicar "hoy" es válido; solo se rechaza el futuro.
	now := time.Date(2023, 6, 1, 8, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.Record(context.Background(), staff, RecordInput{
		PetID:     "pet-a",
		VaccineID: "vac-month",
		AppliedAt: time.Date(2023, 6, 1, 17, 30, 0, 0, time.UTC),
		Batch:     "L-002",
	})
	if err != nil {
		t.Fatalf("Record same day: %v", err)
	}
}

func TestVisibility(t *testing.T) {
	now := date(2023, 6, 1)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	recA, err := svc.Record(ctx, staff, RecordInput{
		PetID: "pet-a", VaccineID: "vac-annual", AppliedAt: date(2023, 1, 1), Batch: "L-001",
	})
	if err != nil {
		t.Fatalf("Record pet-a: %v", err)
	}
	recB, err := svc.Record(ctx, staff, RecordInput{
		PetID: "pet-b", VaccineID: "vac-month", AppliedAt: date(2023, 5, 1), Batch: "L-002",
	})
	if err != nil {
		t.Fatalf("Record pet-b: %v", err)
	}

	// Staff ve todo.
	all, err := svc.ListVisible(ctx, staff)
	if err != nil {
		t.Fatalf("ListVisible staff: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("staff sees %d records, want 2", len(all))
	}

	// Cada dueño ve solo lo de sus mascotas.
	mine, err := svc.ListVisible(ctx, owner1)
	if err != nil {
		t.Fatalf("ListVisible owner1: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != recA.ID {
		t.Fatalf("owner1 sees %v, want only %s", idsOf(mine), recA.ID)
	}

	// GetByID cruzado devuelve forbidden, no not-found.
	if _, err := svc.GetByID(ctx, owner1, recB.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("cross-owner GetByID err = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetByID(ctx, owner2, recB.ID); err != nil {
		t.Fatalf("owner2 GetByID own record: %v", err)
	}

	// ListByPet ajeno también.
	if _, err := svc.ListByPet(ctx, owner2, "pet-a"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("cross-owner ListByPet err = %v, want ErrForbidden", err)
	}
}

func TestUpdate_RecomputesNextDue(t *testing.T) {
	now := date(2023, 6, 1)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	v, err := svc.Record(ctx, staff, RecordInput{
		PetID: "pet-a", VaccineID: "vac-annual", AppliedAt: date(2023, 1, 1), Batch: "L-001",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	// Cambiar a la vacuna mensual recalcula la próxima dosis.
	monthly := "vac-month"
	updated, err := svc.Update(ctx, staff, v.ID, UpdateInput{VaccineID: &monthly})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if want := date(2023, 1, 31); updated.NextDueAt == nil || !updated.NextDueAt.Equal(want) {
		t.Fatalf("next due after vaccine change = %v, want %s", updated.NextDueAt, want.Format("2006-01-02"))
	}

	// Cambiar solo las notas no la toca.
	notes := "refuerzo"
	updated2, err := svc.Update(ctx, staff, v.ID, UpdateInput{Notes: &notes})
	if err != nil {
		t.Fatalf("Update notes: %v", err)
	}
	if !updated2.NextDueAt.Equal(*updated.NextDueAt) {
		t.Fatal("next due changed on notes-only update")
	}

	// Los dueños no corrigen registros.
	if _, err := svc.Update(ctx, owner1, v.ID, UpdateInput{Notes: &notes}); !errors.Is(err, ErrStaffOnly) {
		t.Fatalf("owner update err = %v, want ErrStaffOnly", err)
	}
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService(t, date(2023, 6, 1))
	ctx := context.Background()

	v, err := svc.Record(ctx, staff, RecordInput{
		PetID: "pet-a", VaccineID: "vac-annual", AppliedAt: date(2023, 1, 1), Batch: "L-001",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	if err := svc.Delete(ctx, owner1, v.ID); !errors.Is(err, ErrStaffOnly) {
		t.Fatalf("owner delete err = %v, want ErrStaffOnly", err)
	}
	if err := svc.Delete(ctx, staff, v.ID); err != nil {
		t.Fatalf("staff delete: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatal("record still present after delete")
	}
	if err := svc.Delete(ctx, staff, v.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete err = %v, want ErrNotFound", err)
	}
}

func TestListUpcomingAndOverdue_RespectVisibility(t *testing.T) {
	now := date(2023, 6, 1)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	// pet-a: aplicada hace 30 días con intervalo 30 -> vence hoy (due_soon).
	soon, err := svc.Record(ctx, staff, RecordInput{
		PetID: "pet-a", VaccineID: "vac-month", AppliedAt: date(2023, 5, 2), Batch: "L-001",
	})
	if err != nil {
		t.Fatalf("Record soon: %v", err)
	}
	// pet-b: vencida hace meses.
	late, err := svc.Record(ctx, staff, RecordInput{
		PetID: "pet-b", VaccineID: "vac-month", AppliedAt: date(2023, 1, 1), Batch: "L-002",
	})
	if err != nil {
		t.Fatalf("Record late: %v", err)
	}

	up, err := svc.ListUpcoming(ctx, staff)
	if err != nil {
		t.Fatalf("ListUpcoming: %v", err)
	}
	if len(up) != 1 || up[0].ID != soon.ID {
		t.Fatalf("staff upcoming = %v, want [%s]", idsOf(up), soon.ID)
	}

	od, err := svc.ListOverdue(ctx, staff)
	if err != nil {
		t.Fatalf("ListOverdue: %v", err)
	}
	if len(od) != 1 || od[0].ID != late.ID {
		t.Fatalf("staff overdue = %v, want [%s]", idsOf(od), late.ID)
	}

	// owner1 no ve el vencimiento de pet-b.
	od1, err := svc.ListOverdue(ctx, owner1)
	if err != nil {
		t.Fatalf("ListOverdue owner1: %v", err)
	}
	if len(od1) != 0 {
		t.Fatalf("owner1 overdue = %v, want empty", idsOf(od1))
	}
}
