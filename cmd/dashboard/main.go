package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/transmovil-cr/service-routes/internal/application"
	"github.com/transmovil-cr/service-routes/internal/config"
	"github.com/transmovil-cr/service-routes/internal/handler"
	"github.com/transmovil-cr/service-routes/internal/health"
	"github.com/transmovil-cr/service-routes/internal/logger"
	"github.com/transmovil-cr/service-routes/internal/middleware"
	"github.com/transmovil-cr/service-routes/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDashboard()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "route-dashboard")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting route-dashboard",
		zap.String("port", cfg.Port),
		zap.String("routes", cfg.RoutesPath),
	)

	// Initialize application service
	routeReader := repository.NewSpreadsheetRouteReader(log)
	dashboardService := application.NewDashboardService(routeReader, cfg.RoutesPath, log)

	tmpl, err := handler.LoadTemplates()
	if err != nil {
		log.Fatal("failed to parse templates", zap.Error(err))
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins...))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler("route-dashboard", map[string]health.Check{
		"routes_file": func(ctx context.Context) error {
			_, err := os.Stat(cfg.RoutesPath)
			return err
		},
	})
	healthHandler.RegisterRoutes(router)

	// Register routes
	handler.NewDashboardHandler(dashboardService, log).RegisterRoutes(&router.RouterGroup)
	handler.NewAdminHandler(dashboardService, log).RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down route-dashboard...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("route-dashboard stopped")
}
