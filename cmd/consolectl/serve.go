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

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/goliatone/go-billing-console/pkg/config"
	"github.com/goliatone/go-billing-console/pkg/console"
)

type serveCmd struct {
	Addr string `help:"Listen address (overrides CONSOLE_ADDR)."`
}

func (cmd *serveCmd) Run(rt *runtime) error {
	cfg, err := rt.loadConfig()
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.Addr = cmd.Addr
	}
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(rt.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, app, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("console listening", slog.String("addr", cfg.Addr), slog.String("base_path", cfg.BasePath))
		errCh <- server.Listen(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down console", slog.Duration("timeout", cfg.ShutdownTimeout))
	if err := server.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("consolectl: shutdown: %w", err)
	}
	return nil
}

func newServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*fiber.App, *console.App, error) {
	app, err := console.Build(ctx, cfg, console.BuildOptions{Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	server := fiber.New(fiber.Config{
		AppName:               "consolectl",
		BodyLimit:             cfg.RequestBodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})
	server.Use(requestLogger(logger.With("component", "http")))
	if err := app.Mount(server, nil); err != nil {
		_ = app.Close()
		return nil, nil, err
	}
	return server, app, nil
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request().Header.Set(fiber.HeaderXRequestID, requestID)
		}
		c.Set(fiber.HeaderXRequestID, requestID)
		err := c.Next()
		logger.Info("request",
			slog.String("request_id", requestID),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("duration", time.Since(start)),
		)
		return err
	}
}

func errorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		if status >= fiber.StatusInternalServerError {
			logger.Error("unhandled error", slog.String("path", c.Path()), slog.String("error", err.Error()))
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
}
