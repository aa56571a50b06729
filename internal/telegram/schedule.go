package telegram

import (
	"context"
	"strconv"
	"time"

	"github.com/adhocore/gronx"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"what-lunch/internal/planner"
)

// RunSchedule pushes a fresh plan to every allowed user each minute expr is
// due. It blocks until ctx is cancelled.
func (b *Bot) RunSchedule(ctx context.Context, expr string) error {
	gron := gronx.New()
	b.logger.Info("plan schedule started", zap.String("cron", expr))

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			due, err := gron.IsDue(expr, t.Truncate(time.Minute))
			if err != nil {
				b.logger.Error("invalid plan schedule", zap.String("cron", expr), zap.Error(err))
				continue
			}
			if due {
				b.pushPlans(ctx)
			}
		}
	}
}

// pushPlans sends a new plan to each allowed user's private chat.
func (b *Bot) pushPlans(ctx context.Context) {
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		userID := strconv.FormatInt(id, 10)
		res, err := b.app.GeneratePlan(ctx, userID, 0, planner.Filter{})
		if err != nil {
			b.logger.Error("scheduled plan failed", zap.String("user_id", userID), zap.Error(err))
			continue
		}

		msg := tgbotapi.NewMessage(id, "⏰ Time to plan lunch!\n\n"+formatPlanMarkdown(res.Plan, res.Relaxed, res.FellBack))
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = b.planKeyboard()
		b.send(msg)
	}
}
