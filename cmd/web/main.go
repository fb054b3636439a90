package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/curaan-web/internal/config"
	"github.com/curaan-web/internal/handlers"
	"github.com/curaan-web/internal/logger"
	"github.com/curaan-web/internal/middleware"
	"github.com/curaan-web/internal/repository/backend"
	"github.com/curaan-web/internal/services"
	"github.com/curaan-web/internal/ui"
	"github.com/curaan-web/internal/validator"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const apiPrefix = "/api"

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	templates, err := ui.NewTemplateManager()
	if err != nil {
		log.Error("failed to load templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.IsDevelopment()
	e.Renderer = templates

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.RequestLoggerMiddleware(log))
	e.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// Search backend
	backendClient := backend.NewClient(backend.Config{
		BaseURL:      cfg.BackendURL,
		Timeout:      cfg.BackendTimeout,
		MaxBodyBytes: cfg.MaxBackendBytes,
	})

	// Create services
	therapySearchSvc := services.NewTherapySearchService(
		backendClient,
		validator.New(),
		services.Limits{
			DefaultResults: cfg.DefaultResults,
			MaxResults:     cfg.MaxResults,
			MaxIssueLength: cfg.MaxIssueLength,
		},
		log,
	)

	// API group
	api := e.Group(apiPrefix,
		echomiddleware.BodyLimit("64K"),
		middleware.RateLimitMiddleware(cfg.RateLimit),
	)

	healthHandler := handlers.NewHealthHandler(therapySearchSvc, backendClient.BaseURL())
	healthHandler.RegisterRoutes(api)

	searchHandler := handlers.NewSearchHandler(therapySearchSvc)
	searchHandler.RegisterRoutes(api)

	api.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"name":    cfg.APITitle,
			"version": cfg.APIVersion,
			"status":  "running",
		})
	})

	// Browser pages share the service in-process
	pages := ui.NewPages(therapySearchSvc, ui.PagesConfig{
		AppTitle:       cfg.APITitle,
		ResultCount:    therapySearchSvc.DefaultResults(),
		MaxIssueLength: cfg.MaxIssueLength,
	}, log)
	pages.RegisterRoutes(e)

	e.HTTPErrorHandler = handlers.ErrorHandler(log, apiPrefix, pages.RenderError)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("starting server",
			slog.String("name", cfg.APITitle),
			slog.String("version", cfg.APIVersion),
			slog.String("addr", addr),
			slog.String("backend", backendClient.BaseURL()),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.String("error", err.Error()))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("error shutting down server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
