package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"clubevents/internal/delivery/http/controllers"
	"clubevents/internal/delivery/http/middleware"
	"clubevents/internal/domain"
)

// RouterConfig carries the controllers and cross-cutting pieces the router needs.
type RouterConfig struct {
	Logger         *slog.Logger
	TokenVerifier  domain.TokenVerifier
	AllowedOrigins []string

	Auth          *controllers.AuthController
	Events        *controllers.EventController
	Registrations *controllers.RegistrationController
	Reviews       *controllers.ReviewController
}

// NewRouter initializes the HTTP router with all application routes and wraps
// it with logging, metrics, and CORS middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.TokenVerifier, cfg.Logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", cfg.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", cfg.Auth.Login)

	// Events
	mux.HandleFunc("POST /events", auth(cfg.Events.CreateEvent))
	mux.HandleFunc("GET /events", cfg.Events.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", cfg.Events.GetEvent)
	mux.HandleFunc("PATCH /events/{eventID}", auth(cfg.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(cfg.Events.DeleteEvent))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/register", auth(cfg.Registrations.Register))
	mux.HandleFunc("DELETE /events/{eventID}/register", auth(cfg.Registrations.Unregister))
	mux.HandleFunc("GET /events/{eventID}/registrations", auth(cfg.Registrations.ListRegistrations))
	mux.HandleFunc("PATCH /events/{eventID}/attendees/{userID}", auth(cfg.Registrations.MarkAttendance))
	mux.HandleFunc("DELETE /events/{eventID}/attendees/{userID}", auth(cfg.Registrations.RemoveAttendee))
	mux.HandleFunc("GET /users/me/registrations", auth(cfg.Registrations.ListMyRegistrations))

	// Reviews
	mux.HandleFunc("POST /events/{eventID}/reviews", auth(cfg.Reviews.SubmitReview))
	mux.HandleFunc("GET /events/{eventID}/reviews", cfg.Reviews.ListReviews)

	// Operational endpoints
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.Metrics(handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	return handler
}
