package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usermgmt/portal-service/internal/backend"
	"usermgmt/portal-service/internal/config"
	"usermgmt/portal-service/internal/httpapi"
	"usermgmt/portal-service/internal/logout"
	"usermgmt/portal-service/internal/store"
	"usermgmt/portal-service/internal/store/memory"
	"usermgmt/portal-service/internal/store/postgres"
	"usermgmt/portal-service/internal/telemetry"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg := config.Load()
	shutdownTelemetry := telemetry.Setup("portal-service", version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	if cfg.SessionSecret == "" {
		log.Fatalf("SESSION_SECRET is required")
	}

	var sessions store.Store
	if cfg.DatabaseURL != "" {
		migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := postgres.Migrate(migrateCtx, cfg.DatabaseURL); err != nil {
			cancel()
			log.Fatalf("db migrate: %v", err)
		}
		cancel()

		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer pool.Close()
		sessions = postgres.NewStore(pool)
	} else {
		log.Printf("DB_DSN not set, keeping sessions in memory")
		sessions = memory.NewStore()
	}

	limiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		IPPerMinute:    cfg.RateLimitPerMinute,
		IPBurst:        cfg.RateLimitBurst,
		TrustedProxies: cfg.TrustedProxies,
	})
	handler := httpapi.NewHandler(httpapi.Options{
		Backend:       backend.NewClient(cfg.BackendURL, cfg.BackendTimeout),
		Store:         sessions,
		Cookies:       httpapi.NewCookieStore(cfg.SessionSecret, cfg.SecureCookies),
		SecureCookies: cfg.SecureCookies,
		SessionTTL:    cfg.SessionTTL,
		Limiter:       limiter,
		Logout:        logout.New(cfg.LogoutCountdown, nil),
	})

	otelHandler := otelhttp.NewHandler(httpapi.LoggingMiddleware(handler.Routes()), "portal-service")
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("portal-service listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(cfg.SessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(sweepCtx, 5*time.Second)
				removed, err := sessions.DeleteExpired(ctx, time.Now())
				cancel()
				if err != nil {
					log.Printf("session sweep error: %v", err)
				} else if removed > 0 {
					log.Printf("session sweep removed=%d", removed)
				}
				limiter.Sweep()
			}
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
