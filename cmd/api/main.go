package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lepinkainen/humanlog"

	"bookfinder/internal/auth"
	"bookfinder/internal/book"
	"bookfinder/internal/config"
	"bookfinder/internal/holder"
	"bookfinder/internal/httpx"
	"bookfinder/internal/library"
	"bookfinder/internal/platform/calil"
	"bookfinder/internal/platform/cinii"
	"bookfinder/internal/platform/googlebooks"
	"bookfinder/internal/platform/ndl"
	"bookfinder/internal/platform/rakuten"
	"bookfinder/internal/platform/upstream"
	"bookfinder/internal/reservation"
	"bookfinder/internal/session"
	"bookfinder/internal/user"
)

const sessionCleanupInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: cfg.LogLevel,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool := mustOpenDB(ctx, cfg.DatabaseDSN)
	defer dbPool.Close()

	upstreamClient := func(provider string) *upstream.Client {
		return upstream.NewClient(provider, upstream.Options{
			UserAgent: cfg.UserAgent,
			RPS:       cfg.UpstreamRPS,
			Timeout:   cfg.UpstreamTimeout,
		})
	}

	calilClient := calil.NewClient(upstreamClient("calil"), calil.Config{
		AppKey:       cfg.CalilAppKey,
		PollInterval: cfg.CalilPollInterval,
		MaxWait:      cfg.CalilPollTimeout,
	})
	ciniiClient := cinii.NewClient(upstreamClient("cinii"), cfg.CiNiiAppKey, "")

	libraryStore := library.NewStore(library.NewCalilSource(calilClient))
	if cfg.LibraryRefreshOnStart {
		if _, err := libraryStore.Refresh(ctx); err != nil {
			slog.Warn("initial library refresh failed; serving empty catalog", "error", err)
		}
	}
	scheduler := library.NewScheduler(libraryStore, cfg.LibraryRefreshSchedule)
	if err := scheduler.Start(ctx); err != nil {
		slog.Error("start library refresh scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	bookService := book.NewService(map[string]book.Provider{
		"ndl":     ndl.NewClient(upstreamClient("ndl"), ""),
		"google":  googlebooks.NewClient(upstreamClient("google"), cfg.GoogleAppKey, ""),
		"rakuten": rakuten.NewClient(upstreamClient("rakuten"), cfg.RakutenAppKey, ""),
	})

	holderService := holder.NewService(map[string]holder.Provider{
		"calil": holder.NewCalilProvider(libraryStore, calilClient),
		"cinii": holder.NewCiNiiProvider(ciniiClient),
	}, ciniiClient)

	userService := user.NewService(user.NewPostgresRepo(dbPool, cfg.DBTimeout))
	sessionService := session.NewService(session.NewPostgresRepo(dbPool, cfg.DBTimeout), cfg.SessionTTL)
	authService := auth.NewService(userService, sessionService)
	reservationService := reservation.NewService(reservation.NewPostgresRepo(dbPool, cfg.DBTimeout), libraryStore)

	go cleanupSessions(ctx, sessionService)

	router := newRouter(handlers{
		library:     library.NewHTTPHandler(libraryStore),
		book:        book.NewHTTPHandler(bookService),
		holder:      holder.NewHTTPHandler(holderService),
		user:        user.NewHTTPHandler(userService),
		auth:        auth.NewHTTPHandler(authService),
		reservation: reservation.NewHTTPHandler(reservationService),
	}, sessionService, cfg.InternalSecret, dbPool.Ping)

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Stop()

	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware,
		httpx.AccessLogMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		rateLimiter.Middleware,
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		// Holder queries may poll upstream for up to CALIL_POLL_TIMEOUT.
		WriteTimeout: cfg.CalilPollTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func cleanupSessions(ctx context.Context, sessions *session.Service) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.CleanupExpired(ctx)
			if err != nil {
				slog.Error("session cleanup failed", "error", err)
				continue
			}
			slog.Debug("expired sessions removed", "count", n)
		}
	}
}

func mustOpenDB(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		slog.Error("cannot create db pool", "error", err)
		os.Exit(1)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		slog.Error("cannot ping database", "dsn", redactDSN(dsn), "error", err)
		os.Exit(1)
	}
	slog.Info("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
