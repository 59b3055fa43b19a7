package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/neurosync/backend/internal/app"
	"github.com/zhouzirui/neurosync/backend/internal/config"
	"github.com/zhouzirui/neurosync/backend/internal/handler"
	"github.com/zhouzirui/neurosync/backend/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	lg, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()
	zap.ReplaceGlobals(lg)

	if envErr != nil {
		lg.Info("no .env file loaded, continuing with system environment variables only", zap.Error(envErr))
	}

	services, err := app.Build(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	router := handler.NewRouter(services.Chat, lg)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	lg.Info("NeuroSync backend listening", zap.String("addr", cfg.Server.Addr))
	if err := runServer(ctx, srv); err != nil {
		lg.Error("server error", zap.Error(err))
		return
	}
	lg.Info("server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
