package users

import (
	"context"
	"errors"
	"testing"

	"vet-clinic-api/internal/platform/logger"
)

type fakeRepo struct {
	byID       map[string]User
	byUsername map[string]User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]User{}, byUsername: map[string]User{}}
}

func (r *fakeRepo) Create(_ context.Context, u User) error {
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, errors.New("not found")
	}
	return u, nil
}

func (r *fakeRepo) GetByUsername(_ context.Context, username string) (User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return User{}, errors.New("not found")
	}
	return u, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(newFakeRepo(), logger.Nop())
}

func ownerInput() RegisterInput {
	return RegisterInput{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "secreto123",
		Role:     RoleOwner,
		Name:     "Ana Pérez",
	}
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, ownerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == "" {
		t.Fatal("missing ID")
	}
	if u.PasswordHash == "" || u.PasswordHash == "secreto123" {
		t.Fatal("password not hashed")
	}
	if u.Role != RoleOwner {
		t.Fatalf("role = %s, want owner", u.Role)
	}

	got, err := svc.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Username != "ana" {
		t.Fatalf("username = %s, want ana", got.Username)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, ownerInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	in := ownerInput()
	in.Email = "otra@example.com"
	if _, err := svc.Register(ctx, in); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mangle func(in *RegisterInput)
	}{
		{"empty username", func(in *RegisterInput) { in.Username = "  " }},
		{"empty email", func(in *RegisterInput) { in.Email = "" }},
		{"short password", func(in *RegisterInput) { in.Password = "corta" }},
		{"invalid role", func(in *RegisterInput) { in.Role = "admin" }},
		{"owner with position", func(in *RegisterInput) { in.Position = "veterinario" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := ownerInput()
			tc.mangle(&in)
			if _, err := svc.Register(ctx, in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestRegister_StaffWithPosition(t *testing.T) {
	svc := newTestService(t)

	u, err := svc.Register(context.Background(), RegisterInput{
		Username: "doc",
		Email:    "doc@example.com",
		Password: "secreto123",
		Role:     RoleStaff,
		Position: "veterinario",
	})
	if err != nil {
		t.Fatalf("Register staff: %v", err)
	}
	if u.Position != "veterinario" {
		t.Fatalf("position = %q, want veterinario", u.Position)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, ownerInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	u, err := svc.Authenticate(ctx, "ana", "secreto123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if u.ID != reg.ID {
		t.Fatalf("authenticated ID = %s, want %s", u.ID, reg.ID)
	}

	// Password incorrecto y usuario inexistente fallan igual.
	if _, err := svc.Authenticate(ctx, "ana", "incorrecta1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "nadie", "secreto123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "ana", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty password err = %v, want ErrInvalidCredentials", err)
	}
}
