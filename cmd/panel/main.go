package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutri-admin/internal/adapters/dashboardapi"
	filestore "nutri-admin/internal/adapters/storage/file"
	mem "nutri-admin/internal/adapters/storage/memory"
	pg "nutri-admin/internal/adapters/storage/postgres"
	"nutri-admin/internal/adapters/storage/sqlite"
	"nutri-admin/internal/domain/session"
	"nutri-admin/internal/middleware"
	"nutri-admin/internal/platform/config"
	"nutri-admin/internal/platform/httpclient"
	"nutri-admin/internal/platform/logger"
	"nutri-admin/internal/platform/otel"
	"nutri-admin/internal/router"
	"nutri-admin/internal/web"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		config.Exitf("%v", err)
	}
	cfg, err := config.LoadPanel()
	if err != nil {
		config.Exitf("%v", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	defer func() { _ = log.Sync() }()

	shutdownTracing, err := otel.Setup(context.Background(), otel.Options{
		ServiceName: cfg.AppName,
		Endpoint:    cfg.Tracing.Endpoint,
		Disabled:    cfg.Tracing.Disabled,
	})
	if err != nil {
		config.Exitf("tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("tracing shutdown", map[string]any{"error": err.Error()})
		}
	}()

	hc, err := httpclient.NewWithBaseURL(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		config.Exitf("api client: %v", err)
	}

	sessions, closeStore, err := openSessions(cfg, log)
	if err != nil {
		config.Exitf("session store: %v", err)
	}
	defer closeStore()

	r := router.NewRouter(router.Options{
		API:      dashboardapi.NewClient(hc),
		Sessions: sessions,
		Cookie: middleware.CookieOptions{
			Name:   cfg.SessionCookie,
			Secure: cfg.SessionCookieSecure,
		},
		Logger:   log,
		Renderer: web.MustRenderer(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", map[string]any{
			"addr":          srv.Addr,
			"api_base_url":  cfg.API.BaseURL,
			"session_store": cfg.SessionStore,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", map[string]any{"error": err.Error()})
	}
	log.Info("server stopped", nil)
}

// openSessions elige el backend de sesiones según SESSION_STORE.
func openSessions(cfg config.Panel, log logger.Logger) (session.Backend, func(), error) {
	noop := func() {}

	switch cfg.SessionStore {
	case config.StorePostgres:
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, noop, err
		}
		b := pg.NewSessionBackend(db)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return b, closeDB(db), nil
	case config.StoreSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return sqlite.NewSessionBackend(db), closeDB(db), nil
	case config.StoreFile:
		return filestore.NewSessionBackend(cfg.SessionFile, log), noop, nil
	default:
		return mem.NewSessionBackend(), noop, nil
	}
}

func closeDB(db *sql.DB) func() {
	return func() { _ = db.Close() }
}
