package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mangaview/mangaview/internal/catalog"
	"github.com/mangaview/mangaview/internal/comments"
	"github.com/mangaview/mangaview/internal/config"
	"github.com/mangaview/mangaview/internal/constants"
	"github.com/mangaview/mangaview/internal/domain"
	httpapp "github.com/mangaview/mangaview/internal/http"
	"github.com/mangaview/mangaview/internal/httpclient"
	"github.com/mangaview/mangaview/internal/logger"
	"github.com/mangaview/mangaview/internal/metrics"
	"github.com/mangaview/mangaview/internal/ratelimit"
	"github.com/mangaview/mangaview/internal/store"
	"github.com/mangaview/mangaview/internal/worker"
	"github.com/mangaview/mangaview/web"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Catalog: MangaDex (or the mock) behind the SQLite-backed cache
	var provider catalog.Provider
	if cfg.CatalogMock {
		appLogger.Info("Using mock catalog")
		provider = catalog.NewMockProvider()
	} else {
		client := httpclient.NewClient(&http.Client{Timeout: constants.DefaultHTTPTimeout}, cfg.RequestGap, constants.UserAgent)
		provider = catalog.NewMangaDexProvider(cfg.CatalogURL, cfg.UploadsURL, client, appLogger)
	}
	cached := catalog.NewCachedProvider(provider, catalog.NewStoreCache(db), cfg.CacheTTL)
	if cfg.CacheClear {
		if err := cached.ClearCache(); err != nil {
			appLogger.Error("Failed to clear catalog cache", "error", err)
		} else {
			appLogger.Info("Cleared catalog cache")
		}
	}
	provider = cached

	limiter := ratelimit.New(cfg.CommentLimit, cfg.CommentWindow)
	commentService := comments.NewService(db, limiter, appLogger)

	w := worker.NewWorker(appLogger)
	if cfg.CacheTTL > 0 {
		w.Tasks = append(w.Tasks, worker.PurgeCacheTask(db, cfg.CacheTTL, appLogger))
	}
	w.Go(limiter.Cleanup)
	w.Start()
	defer w.Stop()

	h, err := httpapp.NewHandler(provider, commentService, limiter,
		domain.ContentFilter{Language: cfg.DefaultLanguage, R18: cfg.DefaultR18},
		constants.SupportedLanguages, appLogger)
	if err != nil {
		appLogger.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	// Serve Static Files from embedded filesystem
	static, err := fs.Sub(web.Files, "static")
	if err != nil {
		appLogger.Error("Failed to open static files", "error", err)
		os.Exit(1)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
	r.Handle("/metrics", promhttp.Handler())

	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownWait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exiting")
}
