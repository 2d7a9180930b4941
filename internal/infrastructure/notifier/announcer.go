package notifier

import (
	"context"
	"html"
	"strings"

	"golang.org/x/time/rate"

	"gifts_buyer/internal/domain"
	"gifts_buyer/internal/domain/entity"
	service "gifts_buyer/internal/domain/service/gift"
	"gifts_buyer/internal/i18n"
	"gifts_buyer/pkg/contextx"
	"gifts_buyer/pkg/errcodes"
	"gifts_buyer/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var _ service.Notifier = (*Announcer)(nil)

type TextSender interface {
	SendText(ctx context.Context, text string) error
}

type counter interface {
	Inc()
}

// Announcer renders admin notifications and hands them to a TextSender.
// Without a sender every method is a no-op. Delivery failures are logged
// and counted, never returned.
type Announcer struct {
	sender   TextSender
	tr       *i18n.Translator
	limiter  *rate.Limiter
	failures counter
}

// NewAnnouncer sends without throttling: notifications run inline with
// purchases and must not delay the next unit.
func NewAnnouncer(sender TextSender, tr *i18n.Translator) *Announcer {
	return &Announcer{
		sender:  sender,
		tr:      tr,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
}

// WithLimiter throttles delivery. Send blocks until the limiter allows it.
func (a *Announcer) WithLimiter(limiter *rate.Limiter) *Announcer {
	a.limiter = limiter
	return a
}

func (a *Announcer) WithFailureCounter(c counter) *Announcer {
	a.failures = c
	return a
}

func (a *Announcer) Enabled() bool {
	return a.sender != nil
}

// Started announces the configured ranges and the current balance.
func (a *Announcer) Started(ctx context.Context, balance int64, ranges []entity.GiftRange) {
	a.send(ctx, a.tr.T("telegram.start_message", i18n.Args{
		"language": a.tr.DisplayName(),
		"locale":   a.tr.Locale(),
		"balance":  balance,
		"ranges":   RangeLines(a.tr, ranges),
	}))
}

func (a *Announcer) GiftPurchased(
	ctx context.Context,
	giftID int64,
	recipient entity.PeerRef,
	info entity.ChatInfo,
	current, total int,
) {
	a.send(ctx, a.tr.T("telegram.success_message", i18n.Args{
		"gift_id":   giftID,
		"current":   current,
		"total":     total,
		"recipient": RecipientReference(recipient, info),
	}))
}

func (a *Announcer) InsufficientBalance(ctx context.Context, giftID int64, cost, balance int64) {
	a.send(ctx, a.tr.T("telegram.balance_error", i18n.Args{
		"gift_id":         giftID,
		"gift_price":      cost,
		"current_balance": balance,
	}))
}

func (a *Announcer) PartialPurchase(
	ctx context.Context,
	giftID int64,
	purchased, requested int,
	remainingCost, balance int64,
) {
	a.send(ctx, a.tr.T("telegram.partial_purchase", i18n.Args{
		"gift_id":         giftID,
		"purchased":       purchased,
		"requested":       requested,
		"remaining_cost":  remainingCost,
		"current_balance": balance,
	}))
}

func (a *Announcer) GiftSoldOut(ctx context.Context, giftID int64) {
	a.send(ctx, a.tr.T("telegram.sold_out", i18n.Args{"gift_id": giftID}))
}

func (a *Announcer) InvalidRecipient(ctx context.Context, _ int64, recipient entity.PeerRef) {
	a.send(ctx, a.tr.T("telegram.peer_id_error", i18n.Args{"recipient": html.EscapeString(recipient.String())}))
}

func (a *Announcer) PurchaseError(ctx context.Context, giftID int64, errText string) {
	a.send(ctx, a.tr.T("telegram.error_message", i18n.Args{
		"gift_id": giftID,
		"error":   html.EscapeString(errText),
	}))
}

func (a *Announcer) RangeMismatch(ctx context.Context, item entity.GiftItem) {
	var supplyText string
	if supply := item.MatchSupply(); supply > 0 {
		supplyText = " | " + a.tr.T("telegram.available", nil) + ": " + formatInt(supply)
	}

	a.send(ctx, a.tr.T("telegram.range_error", i18n.Args{
		"gift_id":     item.ID,
		"price":       item.Price,
		"supply_text": supplyText,
	}))
}

// SkipSummary lists non-zero exclusion counts. Nothing is sent when all are zero.
func (a *Announcer) SkipSummary(ctx context.Context, counts entity.SkipCounts) {
	parts := []struct {
		key   string
		count int
	}{
		{key: "telegram.sold_out_item", count: counts.SoldOut},
		{key: "telegram.non_limited_item", count: counts.NonLimited},
		{key: "telegram.non_upgradable_item", count: counts.NonUpgradable},
	}

	lines := []string{a.tr.T("telegram.skip_summary_header", nil)}
	for _, p := range parts {
		if p.count > 0 {
			lines = append(lines, a.tr.T(p.key, i18n.Args{"count": p.count}))
		}
	}

	if len(lines) == 1 {
		return
	}

	a.send(ctx, strings.Join(lines, "\n"))
}

func (a *Announcer) send(ctx context.Context, text string) {
	if a.sender == nil {
		return
	}

	text = strings.TrimSpace(text)

	if err := a.limiter.Wait(ctx); err != nil {
		a.fail(ctx, err)
		return
	}

	if err := a.sender.SendText(ctx, text); err != nil {
		a.fail(ctx, err)
	}
}

func (a *Announcer) fail(ctx context.Context, err error) {
	err = domain.WrapError(err, errcodes.NotificationFailed, "send notification")
	logger(ctx).Error("failed to send notification", logx.Error(err))

	if a.failures != nil {
		a.failures.Inc()
	}
}
