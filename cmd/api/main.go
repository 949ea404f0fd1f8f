package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/crewbaseapp/crewbase-backend/api/controllers"
	"github.com/crewbaseapp/crewbase-backend/api/routes"
	internalauth "github.com/crewbaseapp/crewbase-backend/internal/auth"
	internalusers "github.com/crewbaseapp/crewbase-backend/internal/users"
	"github.com/crewbaseapp/crewbase-backend/pkg/auth/session"
	"github.com/crewbaseapp/crewbase-backend/pkg/config"
	"github.com/crewbaseapp/crewbase-backend/pkg/identity"
	"github.com/crewbaseapp/crewbase-backend/pkg/logger"
	"github.com/crewbaseapp/crewbase-backend/pkg/metrics"
	"github.com/crewbaseapp/crewbase-backend/pkg/profiles"
	"github.com/crewbaseapp/crewbase-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "crewbase-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "crewbase-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	identityClient, err := identity.New(context.Background(), cfg.Firebase)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap identity store", err)
		os.Exit(1)
	}

	profilesClient, err := profiles.New(context.Background(), cfg.Firebase)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap profile store", err)
		os.Exit(1)
	}
	defer func() {
		if err := profilesClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing profile store", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	adminMetrics := metrics.NewAdminOpsMetrics(registry)

	usersService, err := internalusers.NewService(internalusers.ServiceParams{
		IdentityStore: identityClient,
		ProfileStore:  profilesClient,
		Logger:        logg,
		Metrics:       adminMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	authService, err := internalauth.NewService(internalauth.ServiceParams{
		Verifier: identityClient,
		Sessions: sessionManager,
		JWTCfg:   cfg.JWT,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:      cfg,
			Logger:      logg,
			RedisClient: redisClient,
			Sessions:    sessionManager,
			AuthService: authService,
			Users:       usersService,
			Registry:    registry,
			ReadyProbes: map[string]controllers.Pinger{
				"redis": redisClient,
			},
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
