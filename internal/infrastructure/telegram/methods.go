package telegram

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"
	"github.com/samber/lo"

	"gifts_buyer/internal/domain"
	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/pkg/errcodes"
)

// AvailableGifts lists the regular gift catalog in platform order.
func (c *Client) AvailableGifts(ctx context.Context) ([]entity.GiftItem, error) {
	resRaw, err := c.api.PaymentsGetStarGifts(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("payments.getStarGifts: %w", err)
	}

	res, ok := resRaw.(*tg.PaymentsStarGifts)
	if !ok {
		return nil, fmt.Errorf("unexpected response type: %T", resRaw)
	}

	items := make([]entity.GiftItem, 0, len(res.Gifts))
	for _, raw := range res.Gifts {
		g, ok := raw.(*tg.StarGift)
		if !ok {
			continue
		}

		items = append(items, giftItemFromTL(g))
	}

	return items, nil
}

func giftItemFromTL(g *tg.StarGift) entity.GiftItem {
	item := entity.GiftItem{
		ID:        g.ID,
		Title:     g.Title,
		Price:     g.Stars,
		IsLimited: g.Limited,
		IsSoldOut: g.SoldOut,
	}

	if total, ok := g.GetAvailabilityTotal(); ok {
		item.TotalAmount = lo.ToPtr(int64(total))
	}

	if remains, ok := g.GetAvailabilityRemains(); ok {
		item.AvailableAmount = lo.ToPtr(int64(remains))
	}

	if upgrade, ok := g.GetUpgradeStars(); ok {
		item.UpgradePrice = lo.ToPtr(upgrade)
	}

	return item
}

// Balance returns the account's star balance.
func (c *Client) Balance(ctx context.Context) (int64, error) {
	status, err := c.api.PaymentsGetStarsStatus(ctx, &tg.PaymentsGetStarsStatusRequest{
		Peer: &tg.InputPeerSelf{},
	})
	if err != nil {
		return 0, domain.WrapError(err, errcodes.BalanceUnavailable, "payments.getStarsStatus")
	}

	amount, ok := starsAmount(status.Balance)
	if !ok {
		return 0, fmt.Errorf("unexpected balance type: %T", status.Balance)
	}

	return amount, nil
}

func starsAmount(v any) (int64, bool) {
	switch amount := v.(type) {
	case *tg.StarsAmount:
		return amount.Amount, true
	case tg.StarsAmount:
		return amount.Amount, true
	default:
		return 0, false
	}
}

// SendGift pays for one gift to peer with stars.
func (c *Client) SendGift(ctx context.Context, peer entity.PeerRef, giftID int64, hideName bool) error {
	input, err := c.resolve(ctx, peer)
	if err != nil {
		return err
	}

	invoice := &tg.InputInvoiceStarGift{
		HideName: hideName,
		Peer:     input,
		GiftID:   giftID,
	}

	formRaw, err := c.api.PaymentsGetPaymentForm(ctx, &tg.PaymentsGetPaymentFormRequest{Invoice: invoice})
	if err != nil {
		return domain.WrapError(err, errcodes.PaymentFormUnavailable, "payments.getPaymentForm")
	}

	form, ok := formRaw.(interface{ GetFormID() int64 })
	if !ok {
		return domain.NewError(errcodes.PaymentFormUnavailable, fmt.Sprintf("unexpected payment form type: %T", formRaw))
	}

	if _, err := c.api.PaymentsSendStarsForm(ctx, &tg.PaymentsSendStarsFormRequest{
		FormID:  form.GetFormID(),
		Invoice: invoice,
	}); err != nil {
		return domain.WrapError(err, errcodes.GiftSendFailed, "payments.sendStarsForm")
	}

	return nil
}
