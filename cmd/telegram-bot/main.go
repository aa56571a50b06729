package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"what-lunch/internal/app"
	"what-lunch/internal/config"
	"what-lunch/internal/database"
	"what-lunch/internal/history"
	"what-lunch/internal/llm"
	"what-lunch/internal/logging"
	"what-lunch/internal/planner"
	"what-lunch/internal/restaurant"
	"what-lunch/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatalf("Invalid telegram config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Storage and pool
	db, err := database.NewDB(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	pool, err := restaurant.LoadPool(cfg.PoolPath)
	if err != nil {
		logger.Fatal("failed to load restaurant pool", zap.Error(err))
	}

	// 3. Services
	var opts []app.Option
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Fatal("failed to create gemini client", zap.Error(err))
		}
		defer gemini.Close()
		opts = append(opts, app.WithNarrator(llm.NewNarrator(gemini)))
	}

	application := app.NewApp(
		cfg,
		pool,
		planner.New(),
		history.NewRepository(db.SQL),
		planner.NewPlanRepository(db.SQL),
		logger,
		opts...,
	)

	// 4. Telegram Bot
	bot, err := telegram.NewBot(cfg, application, logger)
	if err != nil {
		logger.Fatal("failed to initialize telegram bot", zap.Error(err))
	}

	mux := http.NewServeMux()
	bot.RegisterHandlers(mux)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. Serve until a signal arrives
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("telegram bot server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.PlanCron != "" {
		g.Go(func() error {
			return bot.RunSchedule(gctx, cfg.PlanCron)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return
	}
	logger.Info("server exiting")
}
