package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httpapi "github.com/brandoverts/brandoverts-api/internal/api/http"
	"github.com/brandoverts/brandoverts-api/internal/api/http/handlers"
	"github.com/brandoverts/brandoverts-api/internal/auth"
	"github.com/brandoverts/brandoverts-api/internal/config"
	"github.com/brandoverts/brandoverts-api/internal/observability"
	"github.com/brandoverts/brandoverts-api/internal/persistence"
	"github.com/brandoverts/brandoverts-api/internal/repository"
	"github.com/brandoverts/brandoverts-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}
	defer db.Close(context.Background())

	if cfg.Mongo.EnsureIndexes {
		if err := persistence.EnsureIndexes(ctx, db, logger); err != nil {
			logger.Fatal("index creation failed", zap.Error(err))
		}
	}

	users := repository.NewUserRepository(db.Collection(persistence.UsersCollection))
	blogs := repository.NewBlogRepository(db.Collection(persistence.BlogsCollection))
	leads := repository.NewLeadRepository(db.Collection(persistence.LeadsCollection))
	reminders := repository.NewReminderRepository(db.Collection(persistence.RemindersCollection))
	enquiries := repository.NewEnquiryRepository(db.Collection(persistence.EnquiriesCollection))

	authService := service.NewAuthService(cfg.Auth, users)
	blogService := service.NewBlogService(blogs, users)
	leadService := service.NewLeadService(leads, reminders)
	enquiryService := service.NewEnquiryService(enquiries)

	guard := auth.NewGuard(authService.TokenManager(), cfg.Auth.CookieName)
	metrics := observability.NewMetrics()

	app := httpapi.NewApp(logger, metrics)
	httpapi.RegisterRoutes(app, httpapi.Handlers{
		Health:    handlers.NewHealthHandler(db),
		Auth:      handlers.NewAuthHandler(authService, cfg.Auth, cfg.App.IsProduction()),
		Blogs:     handlers.NewBlogsHandler(blogService, authService.Verifier(), cfg.Auth.CookieName),
		Leads:     handlers.NewLeadsHandler(leadService),
		Enquiries: handlers.NewEnquiriesHandler(enquiryService),
		Pages:     handlers.NewPagesHandler(),
	}, guard)

	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.App.Addr()),
			zap.String("env", cfg.App.Env),
			zap.String("version", cfg.App.Version),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
