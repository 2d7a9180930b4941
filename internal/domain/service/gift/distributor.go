package service

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/pkg/contextx"
	"gifts_buyer/pkg/logx"
)

const defaultRecipientDelay = 500 * time.Millisecond

// PurchaseExecutor is implemented by Purchaser.
type PurchaseExecutor interface {
	Purchase(ctx context.Context, recipient entity.PeerRef, giftID int64, quantity int) entity.PurchaseOutcome
}

// Distributor runs one purchase per recipient of a matched gift, one after
// another, with a pause in between to stay under platform rate limits.
type Distributor struct {
	purchaser PurchaseExecutor
	notifier  Notifier
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewDistributor(purchaser PurchaseExecutor, notifier Notifier) *Distributor {
	return &Distributor{
		purchaser: purchaser,
		notifier:  notifier,
		delay:     defaultRecipientDelay,
		sleep:     contextx.Sleep,
	}
}

func (d *Distributor) WithDelay(delay time.Duration) *Distributor {
	d.delay = delay
	return d
}

func (d *Distributor) WithSleep(sleep func(ctx context.Context, d time.Duration) error) *Distributor {
	d.sleep = sleep
	return d
}

// Distribute returns one outcome per attempted recipient. A failing
// recipient never prevents the next one from being attempted, only
// cancellation of ctx stops the run.
func (d *Distributor) Distribute(ctx context.Context, item entity.GiftItem, match Match) []entity.PurchaseOutcome {
	logger(ctx).Info("processing gift",
		slog.Int64(logx.FieldGiftID, item.ID),
		slog.Int(logx.FieldQuantity, match.Quantity),
		slog.Int(logx.FieldRecipients, len(match.Recipients)),
	)

	outcomes := make([]entity.PurchaseOutcome, 0, len(match.Recipients))

	for i, recipient := range match.Recipients {
		if i > 0 {
			if err := d.sleep(ctx, d.delay); err != nil {
				break
			}
		}

		if ctx.Err() != nil {
			break
		}

		outcome, err := d.purchaseSafely(ctx, recipient, item.ID, match.Quantity)
		if err != nil {
			logger(ctx).Warn("purchase failed for recipient",
				slog.Int64(logx.FieldGiftID, item.ID),
				slog.String(logx.FieldRecipient, recipient.String()),
				logx.Error(err),
			)

			d.notifier.PurchaseError(ctx, item.ID, err.Error())
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (d *Distributor) purchaseSafely(
	ctx context.Context,
	recipient entity.PeerRef,
	giftID int64,
	quantity int,
) (outcome entity.PurchaseOutcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger(ctx).Error(
				"panic in purchase",
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			err = fmt.Errorf("purchase panicked: %v", rec)
			outcome = entity.PurchaseOutcome{
				GiftID:            giftID,
				Recipient:         recipient,
				RecipientLabel:    recipient.String(),
				RequestedQuantity: quantity,
				StoppedEarly:      true,
				Failure:           entity.FailureUnknown,
				Err:               err,
			}
		}
	}()

	return d.purchaser.Purchase(ctx, recipient, giftID, quantity), nil
}
