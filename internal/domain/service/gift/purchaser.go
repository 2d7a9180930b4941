package service

import (
	"context"
	"log/slog"

	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/pkg/logx"
)

// Purchaser buys one gift for one recipient as many times as the balance
// allows. Purchase never returns an error: every failure ends up in the
// outcome and in a notification.
type Purchaser struct {
	client   GiftClient
	notifier Notifier
	hideName bool
}

func NewPurchaser(client GiftClient, notifier Notifier) *Purchaser {
	return &Purchaser{
		client:   client,
		notifier: notifier,
		hideName: true,
	}
}

func (p *Purchaser) WithHiddenSender(hide bool) *Purchaser {
	p.hideName = hide
	return p
}

func (p *Purchaser) Purchase(
	ctx context.Context,
	recipient entity.PeerRef,
	giftID int64,
	quantity int,
) entity.PurchaseOutcome {
	info, label := p.recipientInfo(ctx, recipient)
	price := p.giftPrice(ctx, giftID)
	balance := p.balance(ctx)

	log := logger(ctx).With(
		slog.Int64(logx.FieldGiftID, giftID),
		slog.String(logx.FieldRecipient, label),
	)

	affordable := quantity
	if price > 0 {
		affordable = int(min(int64(quantity), balance/price))
	}

	outcome := entity.PurchaseOutcome{
		GiftID:             giftID,
		Recipient:          recipient,
		RecipientLabel:     label,
		RequestedQuantity:  quantity,
		AffordableQuantity: affordable,
		UnitPrice:          price,
		BalanceBefore:      balance,
		BalanceAfter:       balance,
	}

	if affordable <= 0 {
		log.Warn("insufficient balance for requested quantity",
			slog.Int(logx.FieldRequested, quantity),
			slog.Int64(logx.FieldPrice, price),
			slog.Int64(logx.FieldBalance, balance),
		)

		p.notifier.InsufficientBalance(ctx, giftID, price*int64(quantity), balance)
		outcome.Failure = entity.FailureInsufficientFunds

		return outcome
	}

	for current := 1; current <= affordable; current++ {
		if err := ctx.Err(); err != nil {
			outcome.StoppedEarly = true
			outcome.Err = err

			return outcome
		}

		if err := p.client.SendGift(ctx, recipient, giftID, p.hideName); err != nil {
			p.handleFailure(ctx, &outcome, err)
			return outcome
		}

		outcome.PurchasedQuantity++

		log.Info("gift sent", slog.Int("current", current), slog.Int("total", affordable))
		p.notifier.GiftPurchased(ctx, giftID, recipient, info, current, affordable)
	}

	outcome.BalanceAfter = balance - price*int64(outcome.PurchasedQuantity)

	if affordable < quantity {
		currentPrice := p.giftPrice(ctx, giftID)
		currentBalance := p.balance(ctx)
		remainingCost := int64(quantity-affordable) * currentPrice

		log.Warn("partial purchase",
			slog.Int(logx.FieldPurchased, affordable),
			slog.Int(logx.FieldRequested, quantity),
			slog.Int64("remaining-cost", remainingCost),
			slog.Int64(logx.FieldBalance, currentBalance),
		)

		outcome.BalanceAfter = currentBalance
		p.notifier.PartialPurchase(ctx, giftID, affordable, quantity, remainingCost, currentBalance)
	}

	return outcome
}

func (p *Purchaser) handleFailure(ctx context.Context, outcome *entity.PurchaseOutcome, err error) {
	balance := p.balance(ctx)
	price := p.giftPrice(ctx, outcome.GiftID)
	class := ClassifyFailure(err)

	outcome.StoppedEarly = true
	outcome.Failure = class
	outcome.Err = err
	outcome.BalanceAfter = balance

	log := logger(ctx).With(
		slog.Int64(logx.FieldGiftID, outcome.GiftID),
		slog.String(logx.FieldRecipient, outcome.RecipientLabel),
		slog.String(logx.FieldErrorClass, string(class)),
	)

	switch class {
	case entity.FailureInsufficientFunds:
		log.Error("balance too low to send gift", slog.Int64(logx.FieldBalance, balance))
		p.notifier.InsufficientBalance(ctx, outcome.GiftID, price, balance)
	case entity.FailureSoldOut:
		log.Warn("gift sold out during purchase")
		p.notifier.GiftSoldOut(ctx, outcome.GiftID)
	case entity.FailureInvalidRecipient:
		log.Error("invalid recipient, check the configured id or username")
		p.notifier.InvalidRecipient(ctx, outcome.GiftID, outcome.Recipient)
	default:
		log.Error("failed to send gift", logx.Error(err))
		p.notifier.PurchaseError(ctx, outcome.GiftID, err.Error())
	}
}

// recipientInfo resolves a display label: @username when the platform
// knows one, otherwise the configured reference.
func (p *Purchaser) recipientInfo(ctx context.Context, recipient entity.PeerRef) (entity.ChatInfo, string) {
	info, err := p.client.ChatInfo(ctx, recipient)
	if err != nil {
		logger(ctx).Debug("chat info unavailable",
			slog.String(logx.FieldRecipient, recipient.String()),
			logx.Error(err),
		)

		return entity.ChatInfo{ID: recipient.ID, Username: recipient.Username}, recipient.String()
	}

	if info.Username != "" {
		return info, "@" + info.Username
	}

	return info, recipient.String()
}

// giftPrice returns 0 when the gift is not listed or the catalog is
// unreachable, which disables the affordability check.
func (p *Purchaser) giftPrice(ctx context.Context, giftID int64) int64 {
	items, err := p.client.AvailableGifts(ctx)
	if err != nil {
		logger(ctx).Warn("gift price unavailable", slog.Int64(logx.FieldGiftID, giftID), logx.Error(err))
		return 0
	}

	for _, item := range items {
		if item.ID == giftID {
			return item.Price
		}
	}

	return 0
}

// balance returns 0 when the balance cannot be fetched.
func (p *Purchaser) balance(ctx context.Context) int64 {
	balance, err := p.client.Balance(ctx)
	if err != nil {
		logger(ctx).Warn("balance unavailable", logx.Error(err))
		return 0
	}

	return balance
}
