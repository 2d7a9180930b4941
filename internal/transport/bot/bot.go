package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"gifts_buyer/internal/transport/bot/handler"
	"gifts_buyer/pkg/contextx"
	"gifts_buyer/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const pollTimeoutSeconds = 60

// Bot answers admin commands over long polling.
type Bot struct {
	bot     *telego.Bot
	handler *handler.Handler
	adminID int64
}

func New(bot *telego.Bot, h *handler.Handler, adminID int64) *Bot {
	return &Bot{
		bot:     bot,
		handler: h,
		adminID: adminID,
	}
}

// Run polls for updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: pollTimeoutSeconds,
	})
	if err != nil {
		return fmt.Errorf("get updates: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("create bot handler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.adminID)

	go func() {
		if err := botHandler.Start(); err != nil {
			logger(ctx).Error("bot handler stopped", logx.Error(err))
		}
	}()

	logger(ctx).Info("admin bot started")

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		logger(ctx).Error("failed to stop bot handler", logx.Error(err))
	}

	return ctx.Err()
}
