package router

import (
	"database/sql"
	"net/http"
	"os"

	"pet-health-tracker/internal/adapters/auth/jwtauth"
	notifymem "pet-health-tracker/internal/adapters/notify/memory"
	mem "pet-health-tracker/internal/adapters/storage/memory"
	pg "pet-health-tracker/internal/adapters/storage/postgres"
	"pet-health-tracker/internal/domain/animals"
	"pet-health-tracker/internal/domain/appointments"
	"pet-health-tracker/internal/domain/care"
	"pet-health-tracker/internal/domain/health"
	"pet-health-tracker/internal/domain/users"
	"pet-health-tracker/internal/middleware"
	"pet-health-tracker/internal/ports/auth"
	"pet-health-tracker/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// JWTSecret vacío = modo dev: sin verifier, los requests se autentican
	// con el header X-Debug-User-ID.
	JWTSecret string

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: planificador de recordatorios. Si no viene, in-memory.
	Scheduler notify.Scheduler
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	var (
		verifier auth.AuthVerifier
		signer   auth.TokenSigner
	)
	if opts.JWTSecret != "" {
		provider := jwtauth.NewProvider(opts.JWTSecret)
		verifier = provider
		signer = provider
	} else {
		// En modo dev igualmente hace falta firmar tokens para /auth;
		// el secreto fijo solo vale porque nadie los verifica.
		signer = jwtauth.NewProvider("dev-insecure-secret")
	}

	r.Use(middleware.AuthContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		userRepo   users.Repository
		animalRepo animals.Repository
		careRepo   care.Repository
		apptRepo   appointments.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		userRepo = pg.NewUsersRepo(db)
		animalRepo = pg.NewAnimalsRepo(db)
		careRepo = pg.NewCareRepo(db)
		apptRepo = pg.NewAppointmentsRepo(db)
	} else {
		userRepo = mem.NewUserRepo()
		animalRepo = mem.NewAnimalRepo()
		careRepo = mem.NewCareRepo()
		apptRepo = mem.NewAppointmentRepo()
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = notifymem.NewScheduler()
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo, signer)
	animalsSvc := animals.NewService(animalRepo)
	careSvc := care.NewService(careRepo)
	apptSvc := appointments.NewService(apptRepo, scheduler)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	animals.RegisterRoutes(r, animalsSvc)
	care.RegisterRoutes(r, careSvc, animalsSvc)
	health.RegisterRoutes(r, animalsSvc, careSvc)
	appointments.RegisterRoutes(r, apptSvc, animalsSvc)

	return r
}
