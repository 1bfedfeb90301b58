package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-clinic-api/internal/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrConflict           = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLength = 8

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

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     Role

	Name     string
	Document string
	Phone    string
	Address  string
	Position string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" || email == "" {
		return User{}, ErrInvalidInput
	}
	if len(in.Password) < minPasswordLength {
		return User{}, ErrInvalidInput
	}
	if !in.Role.Valid() {
		return User{}, ErrInvalidInput
	}
	// Position solo tiene sentido para staff.
	if in.Role == RoleOwner && strings.TrimSpace(in.Position) != "" {
		return User{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		s.log.Warn("register rejected: username taken", map[string]any{"username": username})
		return User{}, ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Name:         strings.TrimSpace(in.Name),
		Document:     strings.TrimSpace(in.Document),
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Position:     strings.TrimSpace(in.Position),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}

	s.log.Info("user registered", map[string]any{"user_id": u.ID, "role": string(u.Role)})
	return u, nil
}

// Authenticate valida credenciales para la emisión de tokens.
// Devuelve ErrInvalidCredentials tanto para usuario inexistente como para
// password incorrecto (no filtramos cuál falló).
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("authentication failed", map[string]any{"username": username})
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}
