package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gifts_buyer/internal/domain/entity"
	service "gifts_buyer/internal/domain/service/gift"
)

type purchaseExecutorMock struct {
	PurchaseFunc func(ctx context.Context, recipient entity.PeerRef, giftID int64, quantity int) entity.PurchaseOutcome

	calls []entity.PeerRef
}

func (m *purchaseExecutorMock) Purchase(
	ctx context.Context,
	recipient entity.PeerRef,
	giftID int64,
	quantity int,
) entity.PurchaseOutcome {
	m.calls = append(m.calls, recipient)
	return m.PurchaseFunc(ctx, recipient, giftID, quantity)
}

func TestDistributorDistribute(t *testing.T) {
	rq := require.New(t)

	carol := entity.PeerRef{Username: "carol"}

	executor := &purchaseExecutorMock{
		PurchaseFunc: func(_ context.Context, recipient entity.PeerRef, giftID int64, quantity int) entity.PurchaseOutcome {
			if recipient == bob {
				panic("unexpected nil peer")
			}

			return entity.PurchaseOutcome{
				GiftID:            giftID,
				Recipient:         recipient,
				RequestedQuantity: quantity,
				PurchasedQuantity: quantity,
			}
		},
	}
	notifier := &notifierMock{}

	var sleeps []time.Duration

	distributor := service.NewDistributor(executor, notifier).
		WithSleep(func(_ context.Context, d time.Duration) error {
			sleeps = append(sleeps, d)
			return nil
		})

	item := entity.GiftItem{ID: testGiftID, Price: 100, IsLimited: true}
	match := service.Match{Quantity: 2, Recipients: []entity.PeerRef{alice, bob, carol}}

	outcomes := distributor.Distribute(context.Background(), item, match)

	rq.Equal([]entity.PeerRef{alice, bob, carol}, executor.calls)
	rq.Len(outcomes, 3)
	rq.True(outcomes[0].Complete())
	rq.Equal(entity.FailureUnknown, outcomes[1].Failure)
	rq.ErrorContains(outcomes[1].Err, "unexpected nil peer")
	rq.True(outcomes[2].Complete())

	rq.Equal([]time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, sleeps)
	rq.Equal([]string{"error"}, notifier.Kinds())
}

func TestDistributorStopsWhenCanceled(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	executor := &purchaseExecutorMock{
		PurchaseFunc: func(_ context.Context, recipient entity.PeerRef, giftID int64, quantity int) entity.PurchaseOutcome {
			return entity.PurchaseOutcome{GiftID: giftID, Recipient: recipient}
		},
	}

	distributor := service.NewDistributor(executor, &notifierMock{}).
		WithDelay(time.Millisecond).
		WithSleep(func(context.Context, time.Duration) error {
			cancel()
			return context.Canceled
		})

	outcomes := distributor.Distribute(ctx, entity.GiftItem{ID: testGiftID}, service.Match{
		Quantity:   1,
		Recipients: []entity.PeerRef{alice, bob},
	})

	rq.Len(outcomes, 1)
	rq.Equal([]entity.PeerRef{alice}, executor.calls)
}
