// Command cardscreen-server serves the card display state over HTTP and websocket.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/avolkov/cardscreen/internal/migrate"
	"github.com/avolkov/cardscreen/internal/provider"
	"github.com/avolkov/cardscreen/internal/provider/postgres"
	"github.com/avolkov/cardscreen/internal/provider/static"
	"github.com/avolkov/cardscreen/internal/server/httpapi"
	"github.com/avolkov/cardscreen/internal/store"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, runs migrations when a DSN is set, and starts
// the HTTP server with graceful shutdown.
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dsn := flag.String("dsn", "", "PostgreSQL DSN (empty: built-in demo card)")
	cardID := flag.String("card-id", "", "card row UUID (required with -dsn)")
	fetchDelay := flag.Duration("fetch-delay", 800*time.Millisecond, "demo card fetch latency")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", *addr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cards provider.CardProvider
	if *dsn != "" {
		id, err := uuid.FromString(*cardID)
		if err != nil {
			logger.Fatal("invalid -card-id", zap.Error(err))
		}
		if err := migrate.Up(ctx, *dsn); err != nil {
			logger.Fatal("migrate up", zap.Error(err))
		}
		db, err := postgres.New(ctx, *dsn)
		if err != nil {
			logger.Fatal("connect postgres", zap.Error(err))
		}
		defer db.Close()
		cards = postgres.NewCardRepo(db, id)
	} else {
		logger.Info("no dsn configured, serving demo card")
		cards = static.Demo(*fetchDelay)
	}

	st := store.New(ctx, cards, logger)
	api := httpapi.New(st, logger)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
