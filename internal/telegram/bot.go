package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"what-lunch/internal/app"
	"what-lunch/internal/config"
	"what-lunch/internal/history"
	"what-lunch/internal/metrics"
	"what-lunch/internal/planner"
	"what-lunch/internal/restaurant"
)

const requestTimeout = 30 * time.Second

const helpText = `🍱 *What Lunch*

/plan - plan this week's lunches
/plan 600 - plan with a custom budget
/plan lock=jp,kr - only these cuisines
/plan exclude=west - skip these cuisines
/weekend - pick a weekend restaurant
/history - recently confirmed lunches
/lookback 5 - business days a restaurant stays "recent"
/status - bot health`

// Bot wraps the Telegram API and the lunch planner service.
type Bot struct {
	api    *tgbotapi.BotAPI
	app    *app.App
	cfg    *config.Config
	logger *zap.Logger
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, service *app.App, logger *zap.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger = logger.With(zap.String("component", "telegram"))
	logger.Info("authorized on account", zap.String("username", bot.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook for %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info("webhook set", zap.String("description", resp.Description))

	return &Bot{api: bot, app: service, cfg: cfg, logger: logger}, nil
}

// RegisterHandlers registers the webhook handler with mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Warn("error parsing update", zap.Error(err))
		return
	}

	switch {
	case update.CallbackQuery != nil:
		if !b.isAllowed(update.CallbackQuery.From) {
			return
		}
		go b.handleCallbackQuery(update.CallbackQuery)
	case update.Message != nil:
		if !b.isAllowed(update.Message.From) {
			return
		}
		go b.processMessage(update.Message)
	}
}

func (b *Bot) isAllowed(from *tgbotapi.User) bool {
	if from == nil {
		return false
	}
	if slices.Contains(b.cfg.TelegramAllowedUserIDs, from.ID) {
		return true
	}
	b.logger.Warn("unauthorized access attempt", zap.Int64("user_id", from.ID), zap.String("username", from.UserName))
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	userID := strconv.FormatInt(msg.From.ID, 10)
	switch msg.Command() {
	case "plan":
		b.handlePlanCommand(ctx, userID, msg)
	case "weekend":
		b.handleWeekendCommand(ctx, msg.Chat.ID)
	case "history":
		b.handleHistoryCommand(ctx, userID, msg.Chat.ID)
	case "lookback":
		b.handleLookbackCommand(ctx, userID, msg)
	case "status":
		b.handleStatusCommand(msg.Chat.ID)
	default:
		b.sendMarkdown(msg.Chat.ID, helpText)
	}
}

func (b *Bot) handlePlanCommand(ctx context.Context, userID string, msg *tgbotapi.Message) {
	budget, filter, err := parsePlanArgs(msg.CommandArguments())
	if err != nil {
		b.sendError(msg.Chat.ID, "Invalid /plan arguments", err)
		return
	}

	res, err := b.app.GeneratePlan(ctx, userID, budget, filter)
	if err != nil {
		b.logger.Error("failed to generate plan", zap.String("user_id", userID), zap.Error(err))
		b.sendError(msg.Chat.ID, "Error generating plan", err)
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, formatPlanMarkdown(res.Plan, res.Relaxed, res.FellBack))
	reply.ParseMode = tgbotapi.ModeMarkdown
	keyboard := b.planKeyboard()
	reply.ReplyMarkup = keyboard
	b.send(reply)
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	userID := strconv.FormatInt(query.From.ID, 10)
	action, arg := parseCallbackData(query.Data)

	// Answer callback to remove spinner
	b.request(tgbotapi.NewCallback(query.ID, ""))

	if query.Message == nil {
		return
	}
	chatID, messageID := query.Message.Chat.ID, query.Message.MessageID

	switch action {
	case "reroll":
		index, err := strconv.Atoi(arg)
		if err != nil {
			b.logger.Warn("bad reroll callback", zap.String("data", query.Data))
			return
		}
		res, err := b.app.RerollDay(ctx, userID, index)
		if err != nil {
			b.sendError(chatID, "Error rerolling day", err)
			return
		}
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
			formatPlanMarkdown(res.Plan, res.Relaxed, res.FellBack), b.planKeyboard())
		edit.ParseMode = tgbotapi.ModeMarkdown
		b.send(edit)

	case "confirm":
		plan, err := b.app.ConfirmPlan(ctx, userID)
		if errors.Is(err, app.ErrAlreadyConfirmed) {
			b.sendMarkdown(chatID, "ℹ️ This plan is already in your history.")
			return
		}
		if err != nil {
			b.sendError(chatID, "Error confirming plan", err)
			return
		}
		edit := tgbotapi.NewEditMessageText(chatID, messageID,
			formatPlanMarkdown(plan, false, false)+"\n✅ *Confirmed!* Saved to history.")
		edit.ParseMode = tgbotapi.ModeMarkdown
		b.send(edit)

	case "describe":
		saved, err := b.app.CurrentPlan(ctx, userID)
		if err != nil {
			b.sendError(chatID, "Error loading plan", err)
			return
		}
		text, err := b.app.DescribePlan(ctx, &saved.Plan)
		if err != nil {
			b.sendError(chatID, "Error describing plan", err)
			return
		}
		b.send(tgbotapi.NewMessage(chatID, text))

	case "weekend":
		r, err := b.app.PickWeekend(ctx, arg)
		if err != nil {
			b.sendError(chatID, "Error picking weekend restaurant", err)
			return
		}
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, formatWeekendMarkdown(r), weekendKeyboard(r.ID))
		edit.ParseMode = tgbotapi.ModeMarkdown
		b.send(edit)

	default:
		b.logger.Warn("unknown callback", zap.String("data", query.Data))
	}
}

func (b *Bot) handleWeekendCommand(ctx context.Context, chatID int64) {
	r, err := b.app.PickWeekend(ctx, "")
	if errors.Is(err, planner.ErrEmptyPool) {
		b.sendMarkdown(chatID, "🤷 No weekend restaurants configured.")
		return
	}
	if err != nil {
		b.sendError(chatID, "Error picking weekend restaurant", err)
		return
	}
	reply := tgbotapi.NewMessage(chatID, formatWeekendMarkdown(r))
	reply.ParseMode = tgbotapi.ModeMarkdown
	reply.ReplyMarkup = weekendKeyboard(r.ID)
	b.send(reply)
}

func (b *Bot) handleHistoryCommand(ctx context.Context, userID string, chatID int64) {
	entries, err := b.app.History(ctx, userID)
	if err != nil {
		b.sendError(chatID, "Error loading history", err)
		return
	}
	lookback, err := b.app.Lookback(ctx, userID)
	if err != nil {
		b.sendError(chatID, "Error loading history", err)
		return
	}
	b.sendMarkdown(chatID, formatHistoryMarkdown(entries, lookback, 15))
}

func (b *Bot) handleLookbackCommand(ctx context.Context, userID string, msg *tgbotapi.Message) {
	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		days, err := b.app.Lookback(ctx, userID)
		if err != nil {
			b.sendError(msg.Chat.ID, "Error loading lookback", err)
			return
		}
		b.sendMarkdown(msg.Chat.ID, fmt.Sprintf("🔁 Restaurants stay recent for *%d* business days.", days))
		return
	}

	n, err := strconv.Atoi(arg)
	if err != nil {
		b.sendError(msg.Chat.ID, "Invalid /lookback argument", err)
		return
	}
	days, err := b.app.SetLookback(ctx, userID, n)
	if err != nil {
		b.sendError(msg.Chat.ID, "Error saving lookback", err)
		return
	}
	b.sendMarkdown(msg.Chat.ID, fmt.Sprintf("🔁 Lookback set to *%d* business days.", days))
}

func (b *Bot) handleStatusCommand(chatID int64) {
	health := metrics.Snapshot(filepath.Dir(b.cfg.DBPath))

	var sb strings.Builder
	sb.WriteString("🧠 *System Health*\n")
	fmt.Fprintf(&sb, "• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(&sb, "• GC cycles: %d\n", health.NumGC)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "• Disk Data: %s\n", health.DataSize())
	fmt.Fprintf(&sb, "• Restaurants: %d weekday / %d weekend\n", len(b.app.Pool().Weekday), len(b.app.Pool().Weekend))
	b.sendMarkdown(chatID, sb.String())
}

func (b *Bot) planKeyboard() tgbotapi.InlineKeyboardMarkup {
	return planKeyboard(b.cfg.GeminiAPIKey != "")
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	b.send(msg)
}

func (b *Bot) sendError(chatID int64, title string, err error) {
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.sendMarkdown(chatID, fmt.Sprintf("❌ *%s:*\n```\n%v\n```", title, safeErr))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("failed to send message", zap.Error(err))
	}
}

func (b *Bot) request(c tgbotapi.Chattable) {
	if _, err := b.api.Request(c); err != nil {
		b.logger.Debug("telegram request failed", zap.Error(err))
	}
}

// parsePlanArgs reads "/plan [budget] [lock=c,..|exclude=c,..]" arguments.
func parsePlanArgs(args string) (int, planner.Filter, error) {
	var (
		budget int
		filter planner.Filter
	)
	for _, field := range strings.Fields(args) {
		if key, value, ok := strings.Cut(field, "="); ok {
			mode, err := planner.ParseFilterMode(strings.ToLower(key))
			if err != nil {
				return 0, filter, err
			}
			cuisines, err := restaurant.ParseCuisineList(value)
			if err != nil {
				return 0, filter, err
			}
			filter = planner.Filter{Mode: mode, Cuisines: cuisines}
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n <= 0 {
			return 0, filter, fmt.Errorf("budget must be a positive number, got %q", field)
		}
		budget = n
	}
	return budget, filter, nil
}

// parseCallbackData splits "action|arg".
func parseCallbackData(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, "|")
	return action, arg
}

func planKeyboard(withDescribe bool) tgbotapi.InlineKeyboardMarkup {
	rerolls := make([]tgbotapi.InlineKeyboardButton, 0, planner.DaysPerWeek)
	for i, label := range planner.DayLabels {
		rerolls = append(rerolls, tgbotapi.NewInlineKeyboardButtonData("🎲 "+label[:3], fmt.Sprintf("reroll|%d", i)))
	}
	actions := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("✅ Confirm", "confirm|"),
	}
	if withDescribe {
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData("✨ Describe", "describe|"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rerolls, actions)
}

func weekendKeyboard(currentID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Another one", "weekend|"+currentID),
		),
	)
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func formatPlanMarkdown(plan *planner.WeeklyPlan, relaxed, fellBack bool) string {
	var pb strings.Builder
	pb.WriteString("📅 *Weekly Lunch Plan*\n\n")

	for i, r := range plan.Days {
		fmt.Fprintf(&pb, "*%s*: %s\n", planner.DayLabels[i], escape(r.Name))
		fmt.Fprintf(&pb, "_%s · $%d · %dm_\n", r.Cuisine.Meta().Label, r.Price, r.Distance)
	}

	fmt.Fprintf(&pb, "\n💰 *Total:* $%d / $%d", plan.TotalCost, plan.WeeklyBudget)
	if over := plan.Overrun(); over > 0 {
		fmt.Fprintf(&pb, "\n⚠️ Over budget by $%d, no cheaper combination exists.", over)
	} else {
		fmt.Fprintf(&pb, " (remaining $%d)", plan.Remaining())
	}
	pb.WriteString("\n")

	if fellBack {
		pb.WriteString("\nℹ️ Every restaurant was visited recently, so the full list was used.")
	}
	if relaxed {
		pb.WriteString("\nℹ️ Only one cuisine available, repeats allowed.")
	}
	return pb.String()
}

func formatWeekendMarkdown(r restaurant.Restaurant) string {
	return fmt.Sprintf("🎉 *Weekend pick*: %s\n_%s · $%d · %dm_", escape(r.Name), r.Cuisine.Meta().Label, r.Price, r.Distance)
}

func formatHistoryMarkdown(entries []history.Entry, lookback, limit int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 *Recent Lunches* (lookback %d business days)\n\n", lookback)
	if len(entries) == 0 {
		sb.WriteString("_No history yet_\n")
		return sb.String()
	}
	for i, e := range entries {
		if i == limit {
			fmt.Fprintf(&sb, "…and %d more\n", len(entries)-limit)
			break
		}
		fmt.Fprintf(&sb, "• %s %s\n", e.Date, escape(e.RestaurantName))
	}
	return sb.String()
}
