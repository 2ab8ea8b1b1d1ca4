package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"pods/internal/config"
	"pods/internal/db"
	"pods/internal/feed"
	"pods/internal/handlers"
	"pods/internal/middleware"
	"pods/internal/service"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		logrus.Fatalf("setup logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("open %s store: %v", cfg.DBDriver, err)
	}
	defer store.Close()
	logger.Infof("using %s store", cfg.DBDriver)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: newRouter(cfg, logger, store),
	}

	go func() {
		logger.Infof("listening on %s (commit: %s)", cfg.Addr, CommitSHA)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
}

// newRouter wires the store into the service and HTTP layer.
func newRouter(cfg config.Config, logger *logrus.Logger, store db.DB) *mux.Router {
	resolver := feed.NewResolver(store, feed.NewHTTPFetcher(cfg.FetchTimeout), logger)
	svc := service.New(store, resolver, logger)

	mws := []mux.MiddlewareFunc{middleware.Logging(logger)}
	if cfg.RateLimit > 0 {
		rl := middleware.NewRateLimiterMiddleware(rate.Limit(cfg.RateLimit), cfg.RateBurst, logger)
		mws = append(mws, rl.Middleware)
	}
	return handlers.New(svc, cfg.BaseURL, logger).Router(mws...)
}
