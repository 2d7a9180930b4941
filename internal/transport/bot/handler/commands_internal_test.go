package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/internal/i18n"
	"gifts_buyer/internal/worker"
)

type statusSourceMock struct {
	status worker.CycleStatus
	ok     bool
}

func (m *statusSourceMock) Status() (worker.CycleStatus, bool) {
	return m.status, m.ok
}

type balanceSourceMock struct {
	BalanceFunc func(ctx context.Context) (int64, error)
	calls       int
}

func (m *balanceSourceMock) Balance(ctx context.Context) (int64, error) {
	m.calls++
	return m.BalanceFunc(ctx)
}

func newTestHandler(t *testing.T, status StatusSource, balance BalanceSource, ranges []entity.GiftRange) *Handler {
	t.Helper()

	tr, err := i18n.New("en")
	require.NoError(t, err)

	return New(status, balance, ranges, tr)
}

func TestStatusReply(t *testing.T) {
	finished := time.Date(2025, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name   string
		status *statusSourceMock
		want   string
	}{
		{
			name:   "before the first cycle",
			status: &statusSourceMock{},
			want:   "No detection cycle has finished yet",
		},
		{
			name: "after a cycle",
			status: &statusSourceMock{
				status: worker.CycleStatus{
					FinishedAt: finished,
					NewGifts:   2,
					Purchased:  1,
					Skipped:    entity.SkipCounts{NonLimited: 1},
					Errors:     1,
					Known:      12,
				},
				ok: true,
			},
			want: "🕒 Last cycle: 09.03.25 14:05:07\n🆕 New gifts: 2\n🎁 Purchased: 1\n" +
				"⏭ Skipped: 1\n❗️ Errors: 1\n🗂 Known gifts: 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, tt.status, &balanceSourceMock{}, nil)
			require.New(t).Equal(tt.want, h.statusReply())
		})
	}
}

func TestBalanceReply(t *testing.T) {
	tests := []struct {
		name    string
		balance *balanceSourceMock
		want    string
	}{
		{
			name: "balance fetched",
			balance: &balanceSourceMock{BalanceFunc: func(context.Context) (int64, error) {
				return 1250, nil
			}},
			want: "💰 Balance: 1250 ⭐",
		},
		{
			name: "balance unavailable",
			balance: &balanceSourceMock{BalanceFunc: func(context.Context) (int64, error) {
				return 0, errors.New("payments.getStarsStatus: rpc error")
			}},
			want: "Failed to fetch balance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			h := newTestHandler(t, &statusSourceMock{}, tt.balance, nil)

			rq.Equal(tt.want, h.balanceReply(context.Background()))
			rq.Equal(1, tt.balance.calls)
		})
	}
}

func TestRangesReply(t *testing.T) {
	tests := []struct {
		name   string
		ranges []entity.GiftRange
		want   string
	}{
		{
			name: "single range",
			ranges: []entity.GiftRange{
				{MinPrice: 1, MaxPrice: 500, SupplyLimit: 10000, Quantity: 2, Recipients: []entity.PeerRef{{Username: "alice"}}},
			},
			want: "📋 Ranges:\n• 1-500 ⭐ (supply ≤ 10000) x2 -> 1 recipients",
		},
		{
			name: "ranges keep configured order",
			ranges: []entity.GiftRange{
				{MinPrice: 100, MaxPrice: 200, SupplyLimit: 50, Quantity: 1, Recipients: []entity.PeerRef{{ID: 7}}},
				{MinPrice: 1, MaxPrice: 99, SupplyLimit: 5000, Quantity: 3, Recipients: []entity.PeerRef{{ID: 7}, {ID: 8}}},
			},
			want: "📋 Ranges:\n" +
				"• 100-200 ⭐ (supply ≤ 50) x1 -> 1 recipients\n" +
				"• 1-99 ⭐ (supply ≤ 5000) x3 -> 2 recipients",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &statusSourceMock{}, &balanceSourceMock{}, tt.ranges)
			require.New(t).Equal(tt.want, h.rangesReply())
		})
	}
}
