package handler

import (
	"context"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"gifts_buyer/internal/transport/bot/view"
	"gifts_buyer/pkg/logx"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.Help(h.tr))
}

func (h *Handler) OnStatus(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, h.statusReply())
}

func (h *Handler) OnBalance(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, h.balanceReply(ctx))
}

func (h *Handler) OnRanges(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, h.rangesReply())
}

func (h *Handler) statusReply() string {
	status, ok := h.status.Status()
	return view.Status(h.tr, status, ok)
}

func (h *Handler) balanceReply(ctx context.Context) string {
	balance, err := h.balance.Balance(ctx)
	if err != nil {
		logger(ctx).Error("failed to fetch balance", logx.Error(err))
		return view.BalanceError(h.tr)
	}

	return view.Balance(h.tr, balance)
}

func (h *Handler) rangesReply() string {
	return view.Ranges(h.tr, h.ranges)
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, tu.Message(tu.ID(chatID), text).WithParseMode(telego.ModeHTML))
	return err
}
