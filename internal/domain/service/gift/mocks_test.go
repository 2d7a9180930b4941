package service_test

import (
	"context"
	"sync"

	"gifts_buyer/internal/domain/entity"
)

type giftClientMock struct {
	AvailableGiftsFunc func(ctx context.Context) ([]entity.GiftItem, error)
	BalanceFunc        func(ctx context.Context) (int64, error)
	ChatInfoFunc       func(ctx context.Context, peer entity.PeerRef) (entity.ChatInfo, error)
	SendGiftFunc       func(ctx context.Context, peer entity.PeerRef, giftID int64, hideName bool) error

	mu        sync.Mutex
	sendCalls []sendGiftCall
}

type sendGiftCall struct {
	Peer     entity.PeerRef
	GiftID   int64
	HideName bool
}

func (m *giftClientMock) AvailableGifts(ctx context.Context) ([]entity.GiftItem, error) {
	return m.AvailableGiftsFunc(ctx)
}

func (m *giftClientMock) Balance(ctx context.Context) (int64, error) {
	return m.BalanceFunc(ctx)
}

func (m *giftClientMock) ChatInfo(ctx context.Context, peer entity.PeerRef) (entity.ChatInfo, error) {
	if m.ChatInfoFunc == nil {
		return entity.ChatInfo{ID: peer.ID, Username: peer.Username}, nil
	}

	return m.ChatInfoFunc(ctx, peer)
}

func (m *giftClientMock) SendGift(ctx context.Context, peer entity.PeerRef, giftID int64, hideName bool) error {
	m.mu.Lock()
	m.sendCalls = append(m.sendCalls, sendGiftCall{Peer: peer, GiftID: giftID, HideName: hideName})
	m.mu.Unlock()

	if m.SendGiftFunc == nil {
		return nil
	}

	return m.SendGiftFunc(ctx, peer, giftID, hideName)
}

func (m *giftClientMock) SendCalls() []sendGiftCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]sendGiftCall(nil), m.sendCalls...)
}

type notification struct {
	Kind      string
	GiftID    int64
	Recipient entity.PeerRef
	Current   int
	Total     int
	Purchased int
	Requested int
	Cost      int64
	Balance   int64
	Text      string
	Counts    entity.SkipCounts
}

type notifierMock struct {
	mu     sync.Mutex
	events []notification
}

func (m *notifierMock) add(n notification) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, n)
}

func (m *notifierMock) Events() []notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]notification(nil), m.events...)
}

func (m *notifierMock) Kinds() []string {
	events := m.Events()
	kinds := make([]string, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}

	return kinds
}

func (m *notifierMock) GiftPurchased(_ context.Context, giftID int64, recipient entity.PeerRef, _ entity.ChatInfo, current, total int) {
	m.add(notification{Kind: "purchased", GiftID: giftID, Recipient: recipient, Current: current, Total: total})
}

func (m *notifierMock) InsufficientBalance(_ context.Context, giftID int64, cost, balance int64) {
	m.add(notification{Kind: "insufficient", GiftID: giftID, Cost: cost, Balance: balance})
}

func (m *notifierMock) PartialPurchase(_ context.Context, giftID int64, purchased, requested int, remainingCost, balance int64) {
	m.add(notification{
		Kind:      "partial",
		GiftID:    giftID,
		Purchased: purchased,
		Requested: requested,
		Cost:      remainingCost,
		Balance:   balance,
	})
}

func (m *notifierMock) GiftSoldOut(_ context.Context, giftID int64) {
	m.add(notification{Kind: "sold_out", GiftID: giftID})
}

func (m *notifierMock) InvalidRecipient(_ context.Context, giftID int64, recipient entity.PeerRef) {
	m.add(notification{Kind: "invalid_recipient", GiftID: giftID, Recipient: recipient})
}

func (m *notifierMock) PurchaseError(_ context.Context, giftID int64, errText string) {
	m.add(notification{Kind: "error", GiftID: giftID, Text: errText})
}

func (m *notifierMock) RangeMismatch(_ context.Context, item entity.GiftItem) {
	m.add(notification{Kind: "range", GiftID: item.ID})
}

func (m *notifierMock) SkipSummary(_ context.Context, counts entity.SkipCounts) {
	m.add(notification{Kind: "summary", Counts: counts})
}

type snapshotStoreMock struct {
	LoadFunc func(ctx context.Context) (entity.CatalogSnapshot, error)
	SaveFunc func(ctx context.Context, items []entity.GiftItem) error

	saved [][]entity.GiftItem
}

func (m *snapshotStoreMock) Load(ctx context.Context) (entity.CatalogSnapshot, error) {
	return m.LoadFunc(ctx)
}

func (m *snapshotStoreMock) Save(ctx context.Context, items []entity.GiftItem) error {
	m.saved = append(m.saved, items)

	if m.SaveFunc == nil {
		return nil
	}

	return m.SaveFunc(ctx, items)
}

func catalogOf(items ...entity.GiftItem) func(context.Context) ([]entity.GiftItem, error) {
	return func(context.Context) ([]entity.GiftItem, error) {
		return items, nil
	}
}

func balanceOf(balance int64) func(context.Context) (int64, error) {
	return func(context.Context) (int64, error) {
		return balance, nil
	}
}
