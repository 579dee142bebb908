// Command wardend runs the warden identity and access server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wardenauth/warden/auth"
	"github.com/wardenauth/warden/cache"
	"github.com/wardenauth/warden/config"
	"github.com/wardenauth/warden/directory"
	"github.com/wardenauth/warden/health"
	"github.com/wardenauth/warden/httpapi"
	"github.com/wardenauth/warden/observe"
	"github.com/wardenauth/warden/secret"
)

const (
	serviceName     = "warden"
	serviceVersion  = "0.1.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "wardend: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: serviceName,
		Version:     serviceVersion,
		Tracing: observe.TracingConfig{
			Enabled:   cfg.TracingExporter != "" && cfg.TracingExporter != "none",
			Exporter:  cfg.TracingExporter,
			SamplePct: cfg.TracingSamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  cfg.MetricsExporter != "" && cfg.MetricsExporter != "none",
			Exporter: cfg.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   cfg.LogLevel,
		},
	})
	if err != nil {
		return fmt.Errorf("init observer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "wardend: observer shutdown: %v\n", err)
		}
	}()

	logger := obs.Logger()
	for _, warning := range cfg.Warnings {
		logger.Warn(ctx, warning)
	}

	resolver := secret.NewResolver(true, secret.EnvProvider{}, secret.FileProvider{})
	signingKey, err := cfg.SigningKey(ctx, resolver)
	if err != nil {
		return fmt.Errorf("resolve signing key: %w", err)
	}

	codec, err := auth.NewCodec(signingKey, cfg.TokenValidity)
	if err != nil {
		return fmt.Errorf("init token codec: %w", err)
	}

	seed, err := directory.LoadFile(cfg.DirectoryFile)
	if err != nil {
		return fmt.Errorf("load directory %q: %w", cfg.DirectoryFile, err)
	}

	var principals auth.PrincipalDirectory = seed
	var resources auth.ResourceDirectory = seed
	if cfg.DirectoryCacheTTL > 0 {
		policy := cache.DefaultPolicy()
		policy.DefaultTTL = cfg.DirectoryCacheTTL
		cached := directory.NewCached(seed, seed, policy)
		principals = cached
		resources = cached
	}

	metrics, err := observe.NewDecisionMetrics(obs.Meter())
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	login := auth.NewLoginService(principals, auth.BcryptVerifier{}, codec, logger, metrics)
	authenticator := auth.NewBearerAuthenticator(auth.BearerConfig{}, codec, principals, logger, metrics)
	authorizer := auth.NewResourceAuthorizer(resources, logger, metrics)

	agg := health.NewAggregator(2 * time.Second)
	agg.Register(health.NewCheckerFunc("directory", func(ctx context.Context) health.Result {
		if _, err := resources.LookupResource(ctx, "healthz-probe"); err != nil && !errors.Is(err, auth.ErrResourceNotFound) {
			return health.Unhealthy("directory lookup failing", err)
		}
		return health.Healthy("directory reachable")
	}))

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Handlers:       httpapi.NewHandlers(login, authorizer, logger),
		Authenticator:  authenticator,
		Observer:       obs,
		Health:         agg,
		LoginRateRPS:   cfg.LoginRateRPS,
		LoginRateBurst: cfg.LoginRateBurst,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(gctx, "server listening",
			observe.Field{Key: "addr", Value: cfg.ListenAddr},
			observe.Field{Key: "tokenValidity", Value: cfg.TokenValidity.String()})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info(context.Background(), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
