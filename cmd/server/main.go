package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/jcamiloaa/experienciaas/internal/api/http"
	"github.com/jcamiloaa/experienciaas/internal/cache"
	"github.com/jcamiloaa/experienciaas/internal/config"
	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/repository/postgres"
	"github.com/jcamiloaa/experienciaas/internal/security"
	"github.com/jcamiloaa/experienciaas/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Initialize("info", "text")
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	store, err := postgres.Open(cfg.Database.DSN(), cfg.Database.MaxOpen, cfg.Database.MaxIdle)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Redis is optional; without it dashboards are computed per request.
	var dashboardCache *cache.Cache
	if cfg.Redis.Addr != "" {
		dashboardCache, err = cache.Connect(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, dashboard caching disabled", "error", err)
			dashboardCache = nil
		} else {
			defer dashboardCache.Close()
		}
	}

	tokens := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	var email service.EmailSender
	if cfg.Email.SendGridAPIKey != "" {
		email = service.NewSendGridSender(cfg.Email.SendGridAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		logger.Warn("SendGrid not configured, lifecycle emails disabled")
	}

	policy := service.NewPolicy()
	services := &service.Services{
		Auth:         service.NewAuthService(store.Users, tokens, email),
		Roles:        service.NewRoleService(store.Users, store.RoleApplications, store.OrganizerProfiles, store.SupplierProfiles, store.Follows, policy, email),
		Events:       service.NewEventService(store.Events, policy),
		Tickets:      service.NewTicketService(store.Tickets, store.Events),
		Sponsorships: service.NewSponsorshipService(store.Sponsorships, store.SupplierProfiles, store.Events, policy),
		Analytics: service.NewAnalyticsService(
			store.Users, store.Events, store.Tickets, store.Follows, store.OrganizerProfiles,
			store.Analytics, store.DailyStats, policy, dashboardCache,
			time.Duration(cfg.Analytics.DashboardCacheTTLSeconds)*time.Second,
		),
	}

	server := api.NewServer(services, cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Shutdown failed", "error", err)
		}
	}
}
