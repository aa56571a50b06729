package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"what-lunch/internal/app"
	"what-lunch/internal/config"
	"what-lunch/internal/database"
	"what-lunch/internal/history"
	"what-lunch/internal/llm"
	"what-lunch/internal/logging"
	"what-lunch/internal/planner"
	"what-lunch/internal/restaurant"
)

// cli carries the services every subcommand needs. They are built in the
// root command's PersistentPreRunE so that --help never touches the database.
type cli struct {
	userID  string
	verbose bool

	cfg     *config.Config
	app     *app.App
	logger  *zap.Logger
	closers []func() error
}

func main() {
	c := &cli{}
	err := c.rootCmd().Execute()
	c.close()
	if err != nil {
		os.Exit(1)
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "what-lunch",
		Short: "Plan a week of lunches under a budget",
		Long: `what-lunch picks five weekday lunches from a restaurant pool.

Plans stay within the weekly budget whenever the pool allows it, never put the
same cuisine on three days in a row, and skip restaurants confirmed within the
lookback window.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.userID, "user", "local", "whose history and plans to use")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at WHAT_LUNCH_LOG_LEVEL instead of warn")

	root.AddCommand(
		c.planCmd(),
		c.showCmd(),
		c.rerollCmd(),
		c.confirmCmd(),
		c.weekendCmd(),
		c.historyCmd(),
		c.poolCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := "warn"
	if c.verbose {
		level = cfg.LogLevel
	}
	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	c.logger = logger
	c.closers = append(c.closers, func() error {
		logger.Sync()
		return nil
	})

	db, err := database.NewDB(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.closers = append(c.closers, db.Close)

	pool, err := restaurant.LoadPool(cfg.PoolPath)
	if err != nil {
		return err
	}

	var opts []app.Option
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, gemini.Close)
		opts = append(opts, app.WithNarrator(llm.NewNarrator(gemini)))
	}

	c.app = app.NewApp(
		cfg,
		pool,
		planner.New(),
		history.NewRepository(db.SQL),
		planner.NewPlanRepository(db.SQL),
		logger,
		opts...,
	)
	return nil
}

// close releases resources in reverse order of acquisition.
func (c *cli) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && c.logger != nil {
			c.logger.Warn("close failed", zap.Error(err))
		}
	}
	c.closers = nil
}
