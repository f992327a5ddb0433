package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/leave-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/leave-management-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-management-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

type Handlers struct {
	Auth      AuthHandler
	Employee  EmployeeHandler
	Profile   ProfileHandler
	Leave     LeaveHandler
	Dashboard DashboardHandler
}

func NewRouter(cfg RouterConfig, authService auth.AuthService, store Pinger, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			slog.Error("readiness check failed", "error", err)
			response.ServiceUnavailable(w, "Database unavailable.")
			return
		}
		response.SuccessWithMessage(w, "ok")
	})

	r.Route("/api", func(r chi.Router) {

		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(authService))

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.Profile.Get)
				r.Put("/", h.Profile.Update)
				r.Put("/password", h.Profile.ChangePassword)
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", h.Leave.ListTypes)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Leave.CreateType)
					r.Put("/{id}", h.Leave.UpdateType)
					r.Delete("/{id}", h.Leave.DeleteType)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.GetMyRequests)
				r.Get("/recent", h.Leave.GetMyRecentRequests)
				r.Post("/", h.Leave.CreateRequest)
			})

			r.Get("/leave-balance", h.Leave.GetMyBalance)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})

				r.Route("/admin", func(r chi.Router) {
					r.Get("/dashboard", h.Dashboard.GetDashboard)
					r.Get("/leaves", h.Leave.ListRequests)
					r.Put("/leaves/{id}/approve", h.Leave.ApproveRequest)
					r.Put("/leaves/{id}/reject", h.Leave.RejectRequest)
				})
			})
		})
	})
	return r
}
