package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"reelchat/backend/internal/api/handler"
	"reelchat/backend/internal/chathub"
	"reelchat/backend/internal/config"
	"reelchat/backend/internal/localization"
	"reelchat/backend/internal/pairing"
	"reelchat/backend/internal/storage"
	"reelchat/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/mama165/sdk-go/logs"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func setupDependencies(ctx context.Context, cfg config.Config, log *slog.Logger) (*gorm.DB, *redis.Client, error) {
	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect PostgreSQL: %w", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect Redis: %w", err)
	}

	// 3. Міграції
	if err := storage.Migrate(db); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database and redis connections established, migrations complete")
	return db, rdb, nil
}

func run() error {
	// 1. Configuration & Logger
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(strings.ToUpper(cfg.LogLevel))
	log.Info("starting reelchat backend")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Dependencies
	db, rdb, err := setupDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("closing redis")
		_ = rdb.Close()
	}()
	s := storage.NewStorageService(db, rdb)

	// MAINTENANCE_MODE=true forces the shared flag on; otherwise Redis decides.
	if cfg.MaintenanceMode {
		if err := s.SetMaintenanceMode(ctx, true); err != nil {
			return err
		}
	}

	// 3. Pairing engine and hub
	engine := pairing.NewEngine(log,
		pairing.WithChatCounter(chathub.NewStorageCounter(s, log)),
		pairing.WithHistoryLimit(cfg.HistoryLimit),
		pairing.WithMaintenance(cfg.MaintenanceMode),
	)
	hub := chathub.NewHub(engine, log)
	go func() { _ = hub.Run(ctx) }()

	go func() {
		if err := hub.ListenMaintenance(ctx, s); err != nil {
			log.Error("maintenance listener stopped", "error", err)
		}
	}()

	// 4. Telegram transport
	if cfg.TelegramEnabled() {
		loc, err := localization.NewEmbedded()
		if err != nil {
			return fmt.Errorf("failed to create localizer: %w", err)
		}
		botService, err := telegram.NewBotService(cfg.TelegramBotToken, hub, s, loc, cfg.SendBufferSize, log)
		if err != nil {
			return err
		}
		go func() { _ = botService.Run(ctx) }()
	} else {
		log.Info("TELEGRAM_BOT_TOKEN not set, telegram transport disabled")
	}

	// 5. Gin та роутинг
	if strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	h := handler.NewHandler(hub, handler.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL), s, log, handler.Options{
		SendBufferSize: cfg.SendBufferSize,
		AdminToken:     cfg.AdminToken,
	})
	h.Routes(r)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("starting http server", "address", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("shutting down gracefully")
	case err := <-errChan:
		stop()
		<-hub.Done()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("http server shutdown", "error", err)
	}
	<-hub.Done()
	log.Info("program stopped cleanly")
	return nil
}
