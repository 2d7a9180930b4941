package view

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/internal/i18n"
	"gifts_buyer/internal/worker"
)

func TestStatus(t *testing.T) {
	finished := time.Date(2025, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name   string
		status worker.CycleStatus
		ok     bool
		want   string
	}{
		{
			name: "no cycle yet",
			want: "No detection cycle has finished yet",
		},
		{
			name: "successful cycle",
			status: worker.CycleStatus{
				FinishedAt: finished,
				NewGifts:   3,
				Purchased:  2,
				Skipped:    entity.SkipCounts{SoldOut: 1},
				Known:      40,
			},
			ok: true,
			want: "🕒 Last cycle: 09.03.25 14:05:07\n🆕 New gifts: 3\n🎁 Purchased: 2\n" +
				"⏭ Skipped: 1\n❗️ Errors: 0\n🗂 Known gifts: 40",
		},
		{
			name: "failed cycle shows the error",
			status: worker.CycleStatus{
				FinishedAt: finished,
				Err:        errors.New("diff catalog: <timeout>"),
			},
			ok: true,
			want: "🕒 Last cycle: 09.03.25 14:05:07\n🆕 New gifts: 0\n🎁 Purchased: 0\n" +
				"⏭ Skipped: 0\n❗️ Errors: 0\n🗂 Known gifts: 0\n\n<pre>diff catalog: &lt;timeout&gt;</pre>",
		},
	}

	tr, err := i18n.New("en")
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.New(t).Equal(tt.want, Status(tr, tt.status, tt.ok))
		})
	}
}

func TestRanges(t *testing.T) {
	rq := require.New(t)

	tr, err := i18n.New("en")
	rq.NoError(err)

	got := Ranges(tr, []entity.GiftRange{
		{MinPrice: 1, MaxPrice: 10, SupplyLimit: 100, Quantity: 1, Recipients: []entity.PeerRef{{ID: 1}}},
		{MinPrice: 11, MaxPrice: 20, SupplyLimit: 50, Quantity: 3, Recipients: []entity.PeerRef{{ID: 1}, {ID: 2}}},
	})

	rq.Equal("📋 Ranges:\n"+
		"• 1-10 ⭐ (supply ≤ 100) x1 -> 1 recipients\n"+
		"• 11-20 ⭐ (supply ≤ 50) x3 -> 2 recipients", got)
}
