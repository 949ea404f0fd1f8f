package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crewbaseapp/crewbase-backend/api/controllers"
	"github.com/crewbaseapp/crewbase-backend/api/middleware"
	internalauth "github.com/crewbaseapp/crewbase-backend/internal/auth"
	internalusers "github.com/crewbaseapp/crewbase-backend/internal/users"
	"github.com/crewbaseapp/crewbase-backend/pkg/auth/session"
	"github.com/crewbaseapp/crewbase-backend/pkg/config"
	"github.com/crewbaseapp/crewbase-backend/pkg/logger"
	"github.com/crewbaseapp/crewbase-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	Sessions    session.AccessSessionChecker
	AuthService internalauth.Service
	Users       internalusers.Service
	Registry    *prometheus.Registry
	ReadyProbes map[string]controllers.Pinger
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	sessionPolicy := middleware.NewAuthRateLimitPolicy(
		"session",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.ReadyProbes))
	})

	if params.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(sessionPolicy, params.RedisClient, logg)).
			Post("/session", controllers.SessionLogin(params.AuthService, logg))
		r.Post("/session/refresh", controllers.SessionRefresh(params.AuthService, logg))
		r.Post("/session/logout", controllers.SessionLogout(params.AuthService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, params.Sessions, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Route("/users", func(r chi.Router) {
			r.Post("/invite", controllers.AdminInviteUser(params.Users, logg))
			r.Delete("/{userId}", controllers.AdminDeleteUser(params.Users, logg))
		})
	})

	return r
}
