package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/vagnerwentz/bankapi/infra/initializer"
	"github.com/vagnerwentz/bankapi/pkg/app"
	"github.com/vagnerwentz/bankapi/pkg/config"
	"github.com/vagnerwentz/bankapi/webapi"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	rt, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := rt.Close(); err != nil {
			slog.Error("closing dependencies", "error", err)
		}
	}()
	logger := rt.Deps.Logger

	fiberApp := webapi.SetupApp(app.New(rt.Deps, cfg))
	return serve(ctx, fiberApp, listenAddr(cfg.Server), rt.Workers, logger)
}

func listenAddr(s *config.Server) string {
	if s == nil {
		return ":3000"
	}
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// serve runs the HTTP server and background workers until ctx is cancelled
// or one of them fails, then shuts the server down gracefully.
func serve(ctx context.Context, fiberApp *fiber.App, addr string, workers []initializer.Worker, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", "address", addr)
		return fiberApp.Listen(addr)
	})
	for _, w := range workers {
		g.Go(func() error {
			if err := w(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		return fiberApp.ShutdownWithTimeout(shutdownTimeout)
	})

	return g.Wait()
}
