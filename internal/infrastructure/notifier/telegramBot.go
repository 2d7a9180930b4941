package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"gifts_buyer/internal/domain/entity"
)

// TelegramBot delivers notifications through a Bot API bot.
type TelegramBot struct {
	bot    *telego.Bot
	chatID telego.ChatID
}

func NewTelegramBot(bot *telego.Bot, to entity.PeerRef) *TelegramBot {
	chatID := tu.ID(to.ID)
	if to.IsUsername() {
		chatID = tu.Username("@" + to.Username)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}
}

// SendText sends an HTML message with link previews disabled.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(b.chatID, text).
		WithParseMode(telego.ModeHTML).
		WithLinkPreviewOptions(&telego.LinkPreviewOptions{IsDisabled: true})

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
