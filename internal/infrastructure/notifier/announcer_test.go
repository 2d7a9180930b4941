package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/internal/i18n"
)

type textSenderMock struct {
	SendTextFunc func(ctx context.Context, text string) error
	calls        []string
}

func (m *textSenderMock) SendText(ctx context.Context, text string) error {
	m.calls = append(m.calls, text)
	if m.SendTextFunc == nil {
		return nil
	}

	return m.SendTextFunc(ctx, text)
}

type counterMock struct {
	n int
}

func (c *counterMock) Inc() {
	c.n++
}

func newTestAnnouncer(t *testing.T, sender TextSender) *Announcer {
	t.Helper()

	tr, err := i18n.New("en")
	require.NoError(t, err)

	return NewAnnouncer(sender, tr).WithLimiter(rate.NewLimiter(rate.Inf, 1))
}

func TestAnnouncerMessages(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		call func(a *Announcer)
		want []string
	}{
		{
			name: "purchased with username",
			call: func(a *Announcer) {
				a.GiftPurchased(ctx, 10, entity.PeerRef{ID: 7}, entity.ChatInfo{ID: 7, Username: "alice"}, 1, 2)
			},
			want: []string{"✅ Gift <code>10</code> sent (1/2) to @alice | <code>7</code>"},
		},
		{
			name: "purchased by numeric id",
			call: func(a *Announcer) {
				a.GiftPurchased(ctx, 10, entity.PeerRef{ID: 7}, entity.ChatInfo{}, 2, 2)
			},
			want: []string{`✅ Gift <code>10</code> sent (2/2) to <a href="tg://user?id=7">7</a>`},
		},
		{
			name: "insufficient balance",
			call: func(a *Announcer) { a.InsufficientBalance(ctx, 10, 300, 100) },
			want: []string{"💸 Not enough stars for gift <code>10</code>. Cost: 300 ⭐, balance: 100 ⭐"},
		},
		{
			name: "error text is escaped",
			call: func(a *Announcer) { a.PurchaseError(ctx, 10, "a<b") },
			want: []string{"❗️ Failed to send gift <code>10</code>:\n<pre>a&lt;b</pre>"},
		},
		{
			name: "range mismatch of limited gift",
			call: func(a *Announcer) {
				a.RangeMismatch(ctx, entity.GiftItem{ID: 10, Price: 50, IsLimited: true, TotalAmount: lo.ToPtr[int64](1000)})
			},
			want: []string{"📐 Gift <code>10</code> (50 ⭐ | supply: 1000) does not match any range"},
		},
		{
			name: "range mismatch of unlimited gift",
			call: func(a *Announcer) { a.RangeMismatch(ctx, entity.GiftItem{ID: 10, Price: 50}) },
			want: []string{"📐 Gift <code>10</code> (50 ⭐) does not match any range"},
		},
		{
			name: "skip summary lists non-zero counts",
			call: func(a *Announcer) { a.SkipSummary(ctx, entity.SkipCounts{SoldOut: 2, NonUpgradable: 1}) },
			want: []string{"⏭ Skipped gifts:\n• sold out: 2\n• not upgradable: 1"},
		},
		{
			name: "empty skip summary is not sent",
			call: func(a *Announcer) { a.SkipSummary(ctx, entity.SkipCounts{}) },
		},
		{
			name: "start message",
			call: func(a *Announcer) {
				a.Started(ctx, 500, []entity.GiftRange{{
					MinPrice: 1, MaxPrice: 100, SupplyLimit: 5000, Quantity: 2,
					Recipients: []entity.PeerRef{{ID: 1}, {Username: "bob"}},
				}})
			},
			want: []string{"🚀 <b>Gifts buyer started</b>\n\n🌐 Language: English (en)\n💰 Balance: 500 ⭐\n\n" +
				"📋 Ranges:\n• 1-100 ⭐ (supply ≤ 5000) x2 -> 2 recipients"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			sender := &textSenderMock{}
			tt.call(newTestAnnouncer(t, sender))

			rq.Equal(tt.want, sender.calls)
		})
	}
}

func TestAnnouncerWithoutSender(t *testing.T) {
	rq := require.New(t)

	a := newTestAnnouncer(t, nil)
	rq.False(a.Enabled())
	rq.NotPanics(func() { a.GiftSoldOut(context.Background(), 1) })
}

func TestAnnouncerCountsFailures(t *testing.T) {
	rq := require.New(t)

	sender := &textSenderMock{SendTextFunc: func(context.Context, string) error {
		return errors.New("CHAT_WRITE_FORBIDDEN")
	}}
	failures := &counterMock{}

	a := newTestAnnouncer(t, sender).WithFailureCounter(failures)
	a.GiftSoldOut(context.Background(), 1)
	a.InvalidRecipient(context.Background(), 1, entity.PeerRef{Username: "ghost"})

	rq.Len(sender.calls, 2)
	rq.Equal(2, failures.n)
}

func TestRecipientReference(t *testing.T) {
	tests := []struct {
		name      string
		recipient entity.PeerRef
		info      entity.ChatInfo
		want      string
	}{
		{
			name:      "username and id",
			recipient: entity.PeerRef{Username: "alice"},
			info:      entity.ChatInfo{ID: 7, Username: "alice"},
			want:      "@alice | <code>7</code>",
		},
		{
			name:      "username without info",
			recipient: entity.PeerRef{Username: "alice"},
			want:      "@alice",
		},
		{
			name:      "numeric id",
			recipient: entity.PeerRef{ID: 7},
			want:      `<a href="tg://user?id=7">7</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.New(t).Equal(tt.want, RecipientReference(tt.recipient, tt.info))
		})
	}
}
