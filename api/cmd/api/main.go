package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"farm-management-system/api/internal/handlers"
	"farm-management-system/api/internal/middleware"
	"farm-management-system/api/internal/notify"
	"farm-management-system/api/internal/recommend"
	"farm-management-system/api/internal/repos"
	"farm-management-system/api/internal/service"
	"farm-management-system/api/internal/weather"
	"farm-management-system/shared/authx"
	"farm-management-system/shared/cachex"
	"farm-management-system/shared/config"
	"farm-management-system/shared/dbx"
	"farm-management-system/shared/httpx"
	"farm-management-system/shared/logx"
	"farm-management-system/shared/metricsx"
	"farm-management-system/shared/observability"
)

type statusResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Env     string `json:"env,omitempty"`
	Version string `json:"version,omitempty"`
}

// chainVerifier accepts tokens from any configured verifier, so
// first-party HS256 tokens and OIDC tokens can coexist.
type chainVerifier []authx.Verifier

func (c chainVerifier) Verify(ctx context.Context, rawToken string) (authx.AuthContext, error) {
	var lastErr error = authx.ErrInvalidToken
	for _, v := range c {
		auth, err := v.Verify(ctx, rawToken)
		if err == nil {
			return auth, nil
		}
		lastErr = err
	}
	return authx.AuthContext{}, lastErr
}

func main() {
	cfg, readyProblems := config.Load("api", 8080)
	version := strings.TrimSpace(os.Getenv("VERSION"))
	logger := logx.New(cfg.ServiceName, cfg.Env, version, cfg.LogLevel)
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		readyProblems = append(readyProblems, config.Problem{Field: "DATABASE_URL", Message: "DATABASE_URL is required"})
	}
	if cfg.AuthTokenSecret == "" {
		readyProblems = append(readyProblems, config.Problem{Field: "AUTH_TOKEN_SECRET", Message: "AUTH_TOKEN_SECRET is required"})
	}

	var dbPool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		var err error
		dbPool, err = dbx.NewPool(cfg)
		if err != nil {
			readyProblems = append(readyProblems, config.Problem{Field: "DATABASE_URL", Message: "failed to connect to database"})
			logger.Error(ctx, "db_init_failed", "database init failed",
				slog.String("error_code", "FAILED_PRECONDITION"),
				slog.String("error", err.Error()),
			)
		}
	}

	var cache *cachex.Client
	if cfg.RedisAddr != "" {
		var err error
		cache, err = cachex.New(cfg)
		if err != nil {
			logger.Warn(ctx, "cache_init_failed", "redis init failed, serving without cache",
				slog.String("error", err.Error()),
			)
			cache = nil
		}
	}

	shutdownTracer := func(context.Context) error { return nil }
	if cfg.OtelEnabled {
		var err error
		shutdownTracer, err = observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName: cfg.ServiceName,
			Env:         cfg.Env,
			Endpoint:    cfg.OtelEndpoint,
			Insecure:    cfg.OtelInsecure,
			SampleRatio: cfg.OtelSampleRatio,
		})
		if err != nil {
			logger.Warn(ctx, "otel_init_failed", "tracing init failed, continuing without traces",
				slog.String("error", err.Error()),
			)
			shutdownTracer = func(context.Context) error { return nil }
		}
	}

	metricsx.Register()

	cropsRepo := repos.NewCropsRepo(dbPool)
	harvestsRepo := repos.NewHarvestsRepo(dbPool)
	alertsRepo := repos.NewAlertsRepo(dbPool)
	usersRepo := repos.NewUsersRepo(dbPool)
	outboxRepo := repos.NewOutboxRepo(dbPool)
	auditRepo := repos.NewAuditRepo(dbPool)
	recommendationsRepo := repos.NewRecommendationsRepo(dbPool)

	alertSink := notify.NewAlertSink(dbPool, alertsRepo, outboxRepo)
	cropStore := service.NewCropStore(cropsRepo, harvestsRepo, outboxRepo)
	cropService := service.NewCropService(cropStore, alertSink, logger)
	recommendService := recommend.NewService(recommendationsRepo)

	var weatherProvider weather.Provider = weather.NewStaticProvider()
	if cache != nil {
		weatherProvider = weather.NewCachedProvider(weatherProvider, cache,
			time.Duration(cfg.WeatherCacheTTLSec)*time.Second)
	}

	var issuer *authx.TokenIssuer
	if cfg.AuthTokenSecret != "" {
		var err error
		issuer, err = authx.NewTokenIssuer(cfg.AuthTokenSecret, cfg.AuthTokenTTLHours, cfg.JWTClockSkewSec)
		if err != nil {
			readyProblems = append(readyProblems, config.Problem{Field: "AUTH_TOKEN_SECRET", Message: "failed to initialize token issuer"})
		}
	}

	verifiers := chainVerifier{}
	if issuer != nil {
		verifiers = append(verifiers, issuer)
	}
	if cfg.OIDCIssuer != "" && cfg.OIDCAudience != "" {
		oidcVerifier, err := authx.NewJWTVerifier(cfg.OIDCIssuer, cfg.OIDCAudience, cfg.OIDCJWKSURL, cfg.JWKSTTLSeconds, cfg.JWTClockSkewSec)
		if err != nil {
			readyProblems = append(readyProblems, config.Problem{Field: "OIDC_ISSUER", Message: "failed to initialize JWT verifier"})
		} else {
			verifiers = append(verifiers, oidcVerifier)
		}
	}
	var verifier authx.Verifier
	if len(verifiers) > 0 {
		verifier = verifiers
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, statusResponse{
			Status:  "ok",
			Service: cfg.ServiceName,
			Env:     cfg.Env,
			Version: version,
		})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if len(readyProblems) > 0 {
			httpx.WriteError(
				w,
				r,
				http.StatusServiceUnavailable,
				"FAILED_PRECONDITION",
				"service not ready: invalid configuration",
				map[string]any{"problems": readyProblems},
			)
			return
		}
		if err := dbx.Ping(r.Context(), dbPool); err != nil {
			httpx.WriteError(
				w,
				r,
				http.StatusServiceUnavailable,
				"FAILED_PRECONDITION",
				"service not ready: database unavailable",
				map[string]any{"problem": "db_ping_failed"},
			)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, statusResponse{
			Status:  "ready",
			Service: cfg.ServiceName,
			Env:     cfg.Env,
			Version: version,
		})
	})
	mux.Handle("GET /metrics", metricsx.Handler())

	mux.HandleFunc("GET /api/v1/me", func(w http.ResponseWriter, r *http.Request) {
		auth, ok := authx.FromContext(r.Context())
		if !ok {
			httpx.WriteError(w, r, http.StatusUnauthorized, "UNAUTHENTICATED", "missing auth context", nil)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{
			"subject": auth.Subject,
			"email":   auth.Email,
			"name":    auth.Name,
			"roles":   auth.Roles,
			"claims":  auth.Claims,
		})
	})

	(&handlers.CropsHandler{Service: cropService}).Register(mux)
	(&handlers.AuthHandler{Users: usersRepo, Issuer: issuer}).Register(mux)
	(&handlers.AlertsHandler{Alerts: alertsRepo}).Register(mux)
	(&handlers.HarvestsHandler{Harvests: harvestsRepo}).Register(mux)
	(&handlers.WeatherHandler{Provider: weatherProvider}).Register(mux)
	(&handlers.RecommendationsHandler{Service: recommendService}).Register(mux)

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, r, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})

	skipInfra := func(r *http.Request) bool {
		return r.URL.Path == "/healthz" || r.URL.Path == "/readyz" || r.URL.Path == "/metrics"
	}
	// Weather and recommendations are open reads; auth routes mint the
	// tokens the rest of the API requires.
	skipAuth := func(r *http.Request) bool {
		if skipInfra(r) {
			return true
		}
		return strings.HasPrefix(r.URL.Path, "/api/v1/auth/") ||
			strings.HasPrefix(r.URL.Path, "/api/v1/weather") ||
			strings.HasPrefix(r.URL.Path, "/api/v1/recommendations")
	}
	skipDB := func(r *http.Request) bool {
		return skipInfra(r) || strings.HasPrefix(r.URL.Path, "/api/v1/weather")
	}

	handler := httpx.WrapServeMux(mux, notFound)
	handler = middleware.DBRequiredMiddleware{Pool: dbPool, Skip: skipDB}.Wrap(handler)
	handler = middleware.AuditMiddleware{
		Enabled: cfg.AuditEnabled,
		Repo:    auditRepo,
		Logger:  logger,
		Skip:    skipInfra,
	}.Wrap(handler)
	handler = middleware.AuthMiddleware{Verifier: verifier, Skip: skipAuth}.Wrap(handler)
	handler = middleware.RateLimitMiddleware{
		Limiter: middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 2*time.Minute),
		Skip:    skipInfra,
	}.Wrap(handler)
	handler = middleware.CORSMiddleware{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}.Wrap(handler)
	handler = metricsx.Instrument(handler)
	handler = httpx.WithTimeout(cfg.RequestTimeout, handler)
	handler = httpx.WithRequestID(handler)
	handler = httpx.WithRecover(logger, handler)
	handler = httpx.WithRequestLog(logger, httpx.RequestLogOptions{SkipPaths: map[string]bool{"/healthz": true, "/metrics": true}}, handler)
	if cfg.OtelEnabled {
		handler = otelhttp.NewHandler(handler, "http.server")
	}

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(cfg.HTTPPort)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "service_start", "starting service",
			slog.String("addr", server.Addr),
			slog.Int("http_port", cfg.HTTPPort),
			slog.String("log_level", cfg.LogLevel),
			slog.Int("request_timeout_ms", cfg.RequestTimeoutMS),
		)
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info(ctx, "shutdown_signal", "received signal", slog.String("signal", sig.String()))
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "server_failed", "server failed",
				slog.String("error_code", "INTERNAL_ERROR"),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "shutdown_failed", "shutdown failed",
			slog.String("error_code", "INTERNAL_ERROR"),
			slog.String("error", err.Error()),
		)
	}
	_ = shutdownTracer(shutdownCtx)
	if cache != nil {
		_ = cache.Close()
	}
	if dbPool != nil {
		dbPool.Close()
	}
	logger.Info(ctx, "service_stop", "service stopped")
}
