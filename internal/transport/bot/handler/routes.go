package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"gifts_buyer/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("help"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnBalance, th.CommandEqual("balance"))
	adminGroup.HandleMessage(h.OnRanges, th.CommandEqual("ranges"))
}
