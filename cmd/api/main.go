package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/luckyroue/wheelplay-backend/api/routes"
	"github.com/luckyroue/wheelplay-backend/internal/config"
	"github.com/luckyroue/wheelplay-backend/internal/handlers"
	mongorepo "github.com/luckyroue/wheelplay-backend/internal/repositories/mongodb"
	"github.com/luckyroue/wheelplay-backend/internal/services"
	"github.com/luckyroue/wheelplay-backend/pkg/mongodb"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	if cfg.JWT.Secret == "" {
		slog.Error("JWT secret is not configured")
		os.Exit(1)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)
	if err := mongorepo.EnsureIndexes(context.Background(), db); err != nil {
		slog.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Repositories
	tenantRepo := mongorepo.NewTenantRepository(db)
	campaignRepo := mongorepo.NewCampaignRepository(db)
	prizeRepo := mongorepo.NewPrizeRepository(db)
	playerRepo := mongorepo.NewPlayerRepository(db)
	playRepo := mongorepo.NewPlayRepository(db)
	counterRepo := mongorepo.NewPlayCounterRepository(db)
	rewardRepo := mongorepo.NewRewardCodeRepository(db)
	banRepo := mongorepo.NewBanRepository(db)
	fraudRepo := mongorepo.NewFraudFlagRepository(db)
	consentRepo := mongorepo.NewConsentRepository(db)
	auditRepo := mongorepo.NewAuditLogRepository(db)
	staffRepo := mongorepo.NewStaffUserRepository(db)

	// Services
	playService := services.NewPlayService(
		campaignRepo, prizeRepo, playerRepo, playRepo, counterRepo,
		rewardRepo, banRepo, fraudRepo, consentRepo, tenantRepo,
		services.NewDrawEngine(), cfg.Game,
	)
	campaignService := services.NewCampaignService(campaignRepo, prizeRepo, playRepo, playerRepo, auditRepo)
	rewardService := services.NewRewardService(rewardRepo, prizeRepo, playerRepo, auditRepo)
	banService := services.NewBanService(banRepo, auditRepo)
	authService := services.NewAuthService(staffRepo, cfg.JWT)

	// Handlers
	deps := routes.HandlerDependencies{
		GameHandler:     handlers.NewGameHandler(playService),
		CampaignHandler: handlers.NewCampaignHandler(campaignService),
		RewardHandler:   handlers.NewRewardHandler(rewardService),
		BanHandler:      handlers.NewBanHandler(banService),
		AuthHandler:     handlers.NewAuthHandler(authService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exited")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
