package config

import (
	"fmt"

	"github.com/adhocore/gronx"
	"github.com/caarlos0/env/v11"
)

// Config holds the configuration for the application.
type Config struct {
	DBPath       string `env:"WHAT_LUNCH_DB_PATH" envDefault:"data/what-lunch.db"`
	PoolPath     string `env:"WHAT_LUNCH_POOL_PATH"` // empty means built-in restaurants
	WeeklyBudget int    `env:"WHAT_LUNCH_WEEKLY_BUDGET" envDefault:"750"`
	LookbackDays int    `env:"WHAT_LUNCH_LOOKBACK_DAYS" envDefault:"5"`
	LogLevel     string `env:"WHAT_LUNCH_LOG_LEVEL" envDefault:"info"`

	// Optional: plans are narrated only when a key is set.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	// Telegram Config
	TelegramBotToken       string  `env:"TELEGRAM_BOT_TOKEN"`
	TelegramWebhookURL     string  `env:"TELEGRAM_WEBHOOK_URL"`
	TelegramAllowedUserIDs []int64 `env:"TELEGRAM_ALLOWED_USER_IDS" envSeparator:","`
	Port                   string  `env:"PORT" envDefault:"8080"`
	// Cron expression for pushing a weekly plan, e.g. "0 9 * * 1". Empty disables it.
	PlanCron string `env:"WHAT_LUNCH_PLAN_CRON"`
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that env tags cannot express.
func (c *Config) Validate() error {
	if c.WeeklyBudget <= 0 {
		return fmt.Errorf("WHAT_LUNCH_WEEKLY_BUDGET must be positive, got %d", c.WeeklyBudget)
	}
	if c.LookbackDays < 1 || c.LookbackDays > 30 {
		return fmt.Errorf("WHAT_LUNCH_LOOKBACK_DAYS must be within 1-30, got %d", c.LookbackDays)
	}
	if c.PlanCron != "" {
		if gron := gronx.New(); !gron.IsValid(c.PlanCron) {
			return fmt.Errorf("WHAT_LUNCH_PLAN_CRON is not a valid cron expression: %q", c.PlanCron)
		}
	}
	return nil
}

// RequireTelegram reports the first missing setting the bot cannot run without.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	if len(c.TelegramAllowedUserIDs) == 0 {
		return fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS environment variable not set")
	}
	return nil
}
