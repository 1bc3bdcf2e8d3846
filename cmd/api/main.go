package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"quotelinker/internal/config"
	"quotelinker/internal/database"
	"quotelinker/internal/middleware"
	"quotelinker/internal/modules/leadadmin"
	"quotelinker/internal/modules/quote"
	"quotelinker/internal/notifier"
	"quotelinker/internal/pkg/logger"
	"quotelinker/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", zap.Error(err))
		return err
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Error("migration failed", zap.Error(err))
		return err
	}

	leadRepo := repository.NewLeadRepository(db)

	emailClient := notifier.NewEmailClient(cfg.ResendAPIKey, cfg.ResendBaseURL, cfg.EmailFrom)
	crmClient := notifier.NewCRMClient(cfg.HubSpotAPIKey, cfg.HubSpotBaseURL)

	quoteService := quote.NewService(
		leadRepo,
		[]notifier.Notifier{emailClient, crmClient},
		log,
		cfg.NotifyTimeout,
	)
	sessionStore := quote.NewStore(cfg.SessionTTL)
	quoteHandler := quote.NewHandler(quoteService, sessionStore)

	adminService := leadadmin.NewService(leadRepo)
	adminHandler := leadadmin.NewHandler(adminService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORS(),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		quoteHandler.RegisterRoutes(v1)

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminTokenAuth(cfg.AdminAPIToken, log))
		adminHandler.RegisterRoutes(admin)
	}

	go sessionStore.Janitor(ctx, time.Minute)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
