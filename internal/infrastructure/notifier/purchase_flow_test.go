package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gifts_buyer/internal/domain/entity"
	service "gifts_buyer/internal/domain/service/gift"
	"gifts_buyer/internal/i18n"
)

type giftClientStub struct {
	price   int64
	balance int64
	sent    []time.Time
}

func (s *giftClientStub) AvailableGifts(context.Context) ([]entity.GiftItem, error) {
	return []entity.GiftItem{{ID: 10, Price: s.price, IsLimited: true}}, nil
}

func (s *giftClientStub) Balance(context.Context) (int64, error) {
	return s.balance, nil
}

func (s *giftClientStub) ChatInfo(_ context.Context, peer entity.PeerRef) (entity.ChatInfo, error) {
	return entity.ChatInfo{ID: peer.ID}, nil
}

func (s *giftClientStub) SendGift(context.Context, entity.PeerRef, int64, bool) error {
	s.sent = append(s.sent, time.Now())
	return nil
}

func TestPurchaseRunIsNotThrottledByNotifications(t *testing.T) {
	rq := require.New(t)

	tr, err := i18n.New("en")
	rq.NoError(err)

	sender := &textSenderMock{}
	failures := &counterMock{}
	announcer := NewAnnouncer(sender, tr).WithFailureCounter(failures)

	// Earlier traffic must not eat into the purchase run either.
	for range 5 {
		announcer.RangeMismatch(context.Background(), entity.GiftItem{ID: 1, Price: 5})
	}

	client := &giftClientStub{price: 1, balance: 1000}
	purchaser := service.NewPurchaser(client, announcer)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	started := time.Now()
	outcome := purchaser.Purchase(ctx, entity.PeerRef{ID: 7}, 10, 10)
	elapsed := time.Since(started)

	rq.Equal(10, outcome.PurchasedQuantity)
	rq.False(outcome.StoppedEarly)
	rq.Len(client.sent, 10)
	rq.Len(sender.calls, 15)
	rq.Zero(failures.n)
	rq.Less(elapsed, time.Second)
}
