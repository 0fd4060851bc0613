package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "animal-rescue/docs"
	mem "animal-rescue/internal/adapters/storage/memory"
	"animal-rescue/internal/domain/adoptions"
	"animal-rescue/internal/domain/animals"
	"animal-rescue/internal/domain/contacts"
	"animal-rescue/internal/domain/donations"
	"animal-rescue/internal/domain/rescues"
	"animal-rescue/internal/domain/volunteers"
	"animal-rescue/internal/forms"
	"animal-rescue/internal/middleware"
	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/ports/auth"
	"animal-rescue/internal/ports/rowstore"
	"animal-rescue/internal/visitor"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	AuthBackend  auth.Backend      // nil: sign-in/sign-up responden 503

	// Opcional: si no viene, in-memory.
	Store rowstore.Store

	// Opcional: sin limiter no hay rate limit en los envíos.
	Limiter   middleware.Limiter
	Processor donations.Processor

	// Opcional: si no viene se crea uno con Definitions de forms.
	Registry *visitor.Registry

	Log             logger.Logger
	AllowedOrigins  []string
	CatalogPageSize int
	VisitorTTL      time.Duration
	SecureCookies   bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	zl := log.Zap()

	store := opts.Store
	if store == nil {
		store = mem.NewRowStore()
	}

	reg := opts.Registry
	if reg == nil {
		reg = visitor.NewRegistry(visitor.Deps{
			Backend:     opts.AuthBackend,
			Definitions: forms.Definitions(),
			TTL:         opts.VisitorTTL,
			Secure:      opts.SecureCookies,
			Log:         log,
		})
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.EchoRequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.StructuredLogger(zl))
	r.Use(middleware.Recover(zl))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(reg.Attach)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	animalsSvc := animals.NewService(store, log)
	rescuesSvc := rescues.NewService(store, log)
	svcs := forms.Services{
		Adoptions:  adoptions.NewService(store, log),
		Volunteers: volunteers.NewService(store, log),
		Rescues:    rescuesSvc,
		Contacts:   contacts.NewService(store, log),
		Donations:  donations.NewService(store, opts.Processor, log),
	}

	var limited []func(http.Handler) http.Handler
	if opts.Limiter != nil {
		limited = append(limited, middleware.RateLimit(opts.Limiter, zl))
	}

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc)
	rescues.RegisterRoutes(r, rescuesSvc)

	// Solo estas rutas crean workspace de visitante
	r.Group(func(vr chi.Router) {
		vr.Use(reg.Middleware)
		visitor.RegisterRoutes(vr, animalsSvc, opts.CatalogPageSize)
		vr.Group(func(ar chi.Router) {
			ar.Use(limited...)
			visitor.RegisterAuthRoutes(ar)
		})
		forms.RegisterRoutes(vr, svcs, log, limited...)
	})

	return r
}
