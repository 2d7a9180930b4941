package service

import (
	"context"

	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// CatalogClient lists the gifts currently offered by the platform.
type CatalogClient interface {
	AvailableGifts(ctx context.Context) ([]entity.GiftItem, error)
}

// GiftClient is the part of the platform client used to buy gifts.
type GiftClient interface {
	CatalogClient
	Balance(ctx context.Context) (int64, error)
	ChatInfo(ctx context.Context, peer entity.PeerRef) (entity.ChatInfo, error)
	SendGift(ctx context.Context, peer entity.PeerRef, giftID int64, hideName bool) error
}

// SnapshotStore persists the last observed catalog.
type SnapshotStore interface {
	Load(ctx context.Context) (entity.CatalogSnapshot, error)
	Save(ctx context.Context, items []entity.GiftItem) error
}

// Notifier delivers admin notifications. Implementations own their
// failures: nothing here may interrupt a purchase run.
type Notifier interface {
	GiftPurchased(ctx context.Context, giftID int64, recipient entity.PeerRef, info entity.ChatInfo, current, total int)
	InsufficientBalance(ctx context.Context, giftID int64, cost, balance int64)
	PartialPurchase(ctx context.Context, giftID int64, purchased, requested int, remainingCost, balance int64)
	GiftSoldOut(ctx context.Context, giftID int64)
	InvalidRecipient(ctx context.Context, giftID int64, recipient entity.PeerRef)
	PurchaseError(ctx context.Context, giftID int64, errText string)
	RangeMismatch(ctx context.Context, item entity.GiftItem)
	SkipSummary(ctx context.Context, counts entity.SkipCounts)
}
