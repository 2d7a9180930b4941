package config

import (
	"strconv"
	"strings"

	"gifts_buyer/internal/domain/entity"
)

type Notifications struct {
	ChannelID  string `env:"CHANNEL_ID" json:"channelId"`
	BotToken   string `env:"BOT_TOKEN" json:"botToken"`
	BotAdminID int64  `env:"BOT_ADMIN_ID" json:"botAdminId"`
}

// Channel returns the notification target. An empty value or the bare
// "-100" prefix disables notifications.
func (n Notifications) Channel() (entity.PeerRef, bool) {
	raw := strings.TrimSpace(n.ChannelID)
	if raw == "" || raw == "-100" {
		return entity.PeerRef{}, false
	}

	if strings.HasPrefix(raw, "@") {
		name := strings.TrimPrefix(raw, "@")
		return entity.PeerRef{Username: name}, name != ""
	}

	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return entity.PeerRef{ID: id}, true
	}

	return entity.PeerRef{Username: raw}, true
}

func (n Notifications) BotEnabled() bool {
	return n.BotToken != ""
}

// AdminBotEnabled reports whether the command bot should be started.
func (n Notifications) AdminBotEnabled() bool {
	return n.BotEnabled() && n.BotAdminID != 0
}
