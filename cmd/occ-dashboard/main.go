package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prontabot/occ-dashboard/internal/api"
	"github.com/prontabot/occ-dashboard/internal/config"
	"github.com/prontabot/occ-dashboard/internal/fetch"
	"github.com/prontabot/occ-dashboard/internal/logging"
	"github.com/prontabot/occ-dashboard/internal/prefs"
	"github.com/prontabot/occ-dashboard/internal/refresh"
	"github.com/prontabot/occ-dashboard/internal/snapshot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port, "upstream", cfg.Upstream.BaseURL)

	prefStore, err := prefs.Open(cfg.Prefs.Path)
	if err != nil {
		logging.Fatalf("Failed to open preference store: %v", err)
	}
	defer prefStore.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := fetch.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.FetchTimeout, cfg.Upstream.RetryMax)
	store := snapshot.NewStore()

	refresher := refresh.NewRefresher(client, store, cfg.Upstream.PollInterval, cfg.Upstream.DefaultInterval)
	refresher.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimit))
	router.Use(api.RequestIDMiddleware())
	router.Use(api.MetricsMiddleware())

	handler := api.NewHandler(store, refresher, prefStore, cfg.StatsLocation())
	handler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	refresher.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
