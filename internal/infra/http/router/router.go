package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/onedayhr/crm-api/internal/infra/http/handlers"
	"github.com/onedayhr/crm-api/internal/infra/http/middleware"
)

type Handlers struct {
	Capture       *handlers.CaptureHandler
	Leads         *handlers.LeadHandler
	Stages        *handlers.StageHandler
	Tasks         *handlers.TaskHandler
	Comments      *handlers.CommentHandler
	Calls         *handlers.CallHandler
	Notifications *handlers.NotificationHandler
	AI            *handlers.AIHandler
	Export        *handlers.ExportHandler
	Auth          *handlers.AuthHandler
	Telegram      *handlers.TelegramHandler
	Health        *handlers.HealthHandler
}

type Options struct {
	CORSOrigin string
	// CaptureLimiter guards the public form; nil disables limiting.
	CaptureLimiter middleware.Limiter
}

// preflight answers any OPTIONS request the CORS handler did not treat as a preflight.
func preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func New(h Handlers, opts Options) http.Handler {
	origin := opts.CORSOrigin
	if origin == "" {
		origin = "*"
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Auth-Token", "X-User-Email"},
		MaxAge:         86400,
	}))
	r.Use(preflight)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if opts.CaptureLimiter != nil {
			r.Use(middleware.RateLimit(opts.CaptureLimiter))
		}
		r.Post("/capture", h.Capture.Handle)
	})

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", h.Leads.List)
		r.Post("/", h.Leads.Create)
		r.Put("/", h.Leads.Replace)
		r.Patch("/", h.Leads.Patch)
		r.Delete("/{id}", h.Leads.Delete)
	})

	r.Route("/stages", func(r chi.Router) {
		r.Get("/", h.Stages.List)
		r.Post("/", h.Stages.Create)
		r.Patch("/", h.Stages.Patch)
		r.Delete("/{id}", h.Stages.Delete)
	})

	r.Get("/tasks", h.Tasks.List)
	r.Post("/tasks", h.Tasks.Create)
	r.Patch("/tasks", h.Tasks.Patch)

	r.Get("/comments", h.Comments.List)
	r.Post("/comments", h.Comments.Create)

	r.Get("/calls", h.Calls.List)
	r.Post("/calls", h.Calls.Create)
	r.Post("/calls/webhook", h.Calls.Webhook)

	r.Get("/notifications", h.Notifications.List)

	r.Post("/ai", h.AI.Handle)
	r.Get("/ai/insights", h.AI.Insights)

	r.Get("/export", h.Export.Handle)
	r.Post("/export", h.Export.Handle)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Post("/register", h.Auth.Register)
		r.Post("/invites", h.Auth.GenerateInvite)
		r.Post("/password-reset/request", h.Auth.RequestReset)
		r.Post("/password-reset", h.Auth.ResetPassword)
	})

	r.Post("/telegram/notify", h.Telegram.Notify)

	return r
}
