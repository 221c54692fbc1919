package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reviewer-dashboard/internal/config"
	"reviewer-dashboard/internal/domain"
	"reviewer-dashboard/internal/handler"
	"reviewer-dashboard/internal/repository"
	"reviewer-dashboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if errors.Is(err, domain.ErrInvalidConfig) {
		logger.Fatalf("Config load failed: %v", err)
	}
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("Unknown log level %q, using info", cfg.LogLevel)
	}

	// Проверка конфигурации до любых сетевых вызовов
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	location, err := cfg.Location()
	if err != nil {
		logger.Fatalf("Invalid reference timezone: %v", err)
	}

	// GitHub GraphQL
	client, err := repository.NewClient(cfg, logger)
	if err != nil {
		logger.Fatalf("GitHub client init failed: %v", err)
	}
	prRepo := repository.NewPRRepository(client, cfg, logger)

	// Use Cases
	reportUC := usecase.NewReportUseCase(prRepo, cfg.ExcludedReviewers, location, domain.SystemClock{}, logger)

	// Echo + Handlers
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(handler.LoggingMiddleware(logger))

	apiHandler := handler.NewAPIHandler(reportUC, cfg.PullRequestsURL, logger)
	handler.RegisterHandlers(e, apiHandler)

	logger.WithFields(logrus.Fields{
		"repository": cfg.RepoOwner + "/" + cfg.RepoName,
		"excluded":   cfg.ExcludedReviewers,
		"timezone":   cfg.ReferenceTimezone,
	}).Info("Reviewer dashboard configured")

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
