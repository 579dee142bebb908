package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wardenauth/warden/auth"
	"github.com/wardenauth/warden/health"
	"github.com/wardenauth/warden/observe"
)

// RouterConfig wires the HTTP surface together.
type RouterConfig struct {
	Handlers      *Handlers
	Authenticator *auth.BearerAuthenticator
	Observer      observe.Observer
	Health        *health.Aggregator

	// LoginRateRPS and LoginRateBurst throttle the login route per
	// client address. Zero RPS disables the limiter.
	LoginRateRPS   float64
	LoginRateBurst int
}

// NewRouter builds the service mux. Authentication runs on every
// request and fails open; enforcement happens only on protected routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(observe.RequestMiddleware(cfg.Observer))
	r.Use(auth.Middleware(cfg.Authenticator))

	r.Get("/", cfg.Handlers.HandleRoot)
	r.Get("/healthz/live", health.LivenessHandler())
	r.Get("/healthz/ready", health.ReadinessHandler(cfg.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		login := http.HandlerFunc(cfg.Handlers.HandleLogin)
		if cfg.LoginRateRPS > 0 {
			r.With(LoginRateLimit(cfg.LoginRateRPS, cfg.LoginRateBurst)).
				Post("/auth/login", login)
		} else {
			r.Post("/auth/login", login)
		}

		r.Group(func(r chi.Router) {
			r.Use(RequireIdentity)
			r.Post("/auth/resource", cfg.Handlers.HandleAuthorize)
			r.Get("/welcome", cfg.Handlers.HandleWelcome)
		})
	})

	return r
}
