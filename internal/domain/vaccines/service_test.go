package vaccines

import (
	"context"
	"errors"
	"testing"

	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/platform/logger"
)

type fakeRepo struct {
	items map[string]Vaccine
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Vaccine{}}
}

func (r *fakeRepo) Create(_ context.Context, v Vaccine) error {
	r.items[v.ID] = v
	return nil
}

func (r *fakeRepo) Update(_ context.Context, v Vaccine) error {
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

func (r *fakeRepo) GetByID(_ context.Context, id string) (Vaccine, error) {
	v, ok := r.items[id]
	if !ok {
		return Vaccine{}, errors.New("not found")
	}
	return v, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]Vaccine, error) {
	out := make([]Vaccine, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	return out, nil
}

var (
	staff = users.Actor{UserID: "staff-1", Role: users.RoleStaff}
	owner = users.Actor{UserID: "owner-1", Role: users.RoleOwner}
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(newFakeRepo(), logger.Nop())
}

func validInput() CreateInput {
	return CreateInput{
		Name:         "Antirrábica",
		Manufacturer: "VetLabs",
		Price:        45.5,
		IntervalDays: 365,
	}
}

func TestCreate_StaffOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, owner, validInput()); !errors.Is(err, ErrStaffOnly) {
		t.Fatalf("owner create err = %v, want ErrStaffOnly", err)
	}

	v, err := svc.Create(ctx, staff, validInput())
	if err != nil {
		t.Fatalf("staff create: %v", err)
	}
	if v.IntervalDays != 365 {
		t.Fatalf("interval = %d, want 365", v.IntervalDays)
	}

	// El catálogo es legible para cualquier autenticado.
	if _, err := svc.GetByID(ctx, v.ID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mangle func(in *CreateInput)
	}{
		{"empty name", func(in *CreateInput) { in.Name = " " }},
		{"empty manufacturer", func(in *CreateInput) { in.Manufacturer = "" }},
		{"zero price", func(in *CreateInput) { in.Price = 0 }},
		{"negative price", func(in *CreateInput) { in.Price = -1 }},
		{"zero interval", func(in *CreateInput) { in.IntervalDays = 0 }},
		{"negative interval", func(in *CreateInput) { in.IntervalDays = -30 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mangle(&in)
			if _, err := svc.Create(ctx, staff, in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestUpdateDelete_StaffOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v, err := svc.Create(ctx, staff, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	price := 50.0
	if _, err := svc.Update(ctx, owner, v.ID, UpdateInput{Price: &price}); !errors.Is(err, ErrStaffOnly) {
		t.Fatalf("owner update err = %v, want ErrStaffOnly", err)
	}

	updated, err := svc.Update(ctx, staff, v.ID, UpdateInput{Price: &price})
	if err != nil {
		t.Fatalf("staff update: %v", err)
	}
	if updated.Price != price || updated.Name != v.Name {
		t.Fatalf("partial update clobbered fields: %+v", updated)
	}

	badInterval := 0
	if _, err := svc.Update(ctx, staff, v.ID, UpdateInput{IntervalDays: &badInterval}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	if err := svc.Delete(ctx, owner, v.ID); !errors.Is(err, ErrStaffOnly) {
		t.Fatalf("owner delete err = %v, want ErrStaffOnly", err)
	}
	if err := svc.Delete(ctx, staff, v.ID); err != nil {
		t.Fatalf("staff delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, v.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete err = %v, want ErrNotFound", err)
	}
}

func TestIntervalDays(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v, err := svc.Create(ctx, staff, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	days, err := svc.IntervalDays(ctx, v.ID)
	if err != nil {
		t.Fatalf("IntervalDays: %v", err)
	}
	if days != 365 {
		t.Fatalf("IntervalDays = %d, want 365", days)
	}
	if _, err := svc.IntervalDays(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err = %v, want ErrNotFound", err)
	}
}
