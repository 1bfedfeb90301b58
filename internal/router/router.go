package router

import (
	"database/sql"
	"net/http"

	_ "vet-clinic-api/docs" // registro del spec swagger
	mem "vet-clinic-api/internal/adapters/storage/memory"
	pg "vet-clinic-api/internal/adapters/storage/postgres"
	"vet-clinic-api/internal/domain/pets"
	"vet-clinic-api/internal/domain/users"
	"vet-clinic-api/internal/domain/vaccinations"
	"vet-clinic-api/internal/domain/vaccines"
	"vet-clinic-api/internal/middleware"
	"vet-clinic-api/internal/platform/logger"
	"vet-clinic-api/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil => modo dev (headers X-Debug-*)
	TokenIssuer  auth.TokenIssuer

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Log logger.Logger

	// Ventana "due_soon" en días; <= 0 usa el default del dominio.
	DueSoonWindowDays int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/docs/*", httpSwagger.Handler())

	var (
		usersRepo        users.Repository
		petsRepo         pets.Repository
		vaccinesRepo     vaccines.Repository
		vaccinationsRepo vaccinations.Repository
	)

	if opts.DB != nil {
		usersRepo = pg.NewUsersRepo(opts.DB)
		petsRepo = pg.NewPetsRepo(opts.DB)
		vaccinesRepo = pg.NewVaccinesRepo(opts.DB)
		vaccinationsRepo = pg.NewVaccinationsRepo(opts.DB)
	} else {
		usersRepo = mem.NewUsersRepo()
		petsRepo = mem.NewPetsRepo()
		vaccinesRepo = mem.NewVaccinesRepo()
		vaccinationsRepo = mem.NewVaccinationsRepo()
	}

	// Services por módulo
	usersSvc := users.NewService(usersRepo, log.With(map[string]any{"module": "users"}))
	petsSvc := pets.NewService(petsRepo, log.With(map[string]any{"module": "pets"}))
	vaccinesSvc := vaccines.NewService(vaccinesRepo, log.With(map[string]any{"module": "vaccines"}))
	vaccinationsSvc := vaccinations.NewService(
		vaccinationsRepo,
		petsSvc,
		vaccinesSvc,
		vaccinations.Config{DueSoonWindowDays: opts.DueSoonWindowDays},
		log.With(map[string]any{"module": "vaccinations"}),
	)

	// Rutas por módulo
	r.Route("/api/v1", func(api chi.Router) {
		users.RegisterRoutes(api, usersSvc, opts.TokenIssuer)
		pets.RegisterRoutes(api, petsSvc)
		vaccines.RegisterRoutes(api, vaccinesSvc)
		vaccinations.RegisterRoutes(api, vaccinationsSvc)
	})

	return r
}
