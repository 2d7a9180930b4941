package service

import (
	"context"
	"fmt"
	"log/slog"

	"gifts_buyer/internal/domain"
	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/pkg/errcodes"
	"gifts_buyer/pkg/logx"
)

// CatalogDiff is the outcome of comparing the live catalog with the
// stored snapshot. Current is kept in catalog order for Commit.
type CatalogDiff struct {
	New        entity.CatalogSnapshot
	OrderedIDs []int64
	Current    []entity.GiftItem
}

// CatalogDiffer owns the snapshot: it reads it at cycle start and
// overwrites it on Commit.
type CatalogDiffer struct {
	client CatalogClient
	store  SnapshotStore
}

func NewCatalogDiffer(client CatalogClient, store SnapshotStore) *CatalogDiffer {
	return &CatalogDiffer{
		client: client,
		store:  store,
	}
}

// Diff returns gifts present in the live catalog but absent from the
// snapshot. An unreadable snapshot counts as empty, a failed catalog fetch
// fails the whole diff.
func (d *CatalogDiffer) Diff(ctx context.Context) (CatalogDiff, error) {
	previous, err := d.loadPrevious(ctx)
	if err != nil {
		return CatalogDiff{}, err
	}

	items, err := d.client.AvailableGifts(ctx)
	if err != nil {
		return CatalogDiff{}, domain.WrapError(err, errcodes.CatalogUnavailable, "fetch available gifts")
	}

	diff := CatalogDiff{
		New:        make(entity.CatalogSnapshot),
		OrderedIDs: make([]int64, 0, len(items)),
		Current:    make([]entity.GiftItem, 0, len(items)),
	}

	seen := make(map[int64]struct{}, len(items))

	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}

		diff.OrderedIDs = append(diff.OrderedIDs, item.ID)
		diff.Current = append(diff.Current, item)

		if _, known := previous[item.ID]; !known {
			diff.New[item.ID] = item
		}
	}

	return diff, nil
}

// Commit persists the catalog observed by Diff.
func (d *CatalogDiffer) Commit(ctx context.Context, diff CatalogDiff) error {
	if err := d.store.Save(ctx, diff.Current); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	return nil
}

func (d *CatalogDiffer) loadPrevious(ctx context.Context) (entity.CatalogSnapshot, error) {
	previous, err := d.store.Load(ctx)
	if err == nil {
		if previous == nil {
			previous = entity.CatalogSnapshot{}
		}

		return previous, nil
	}

	if domain.HasCode(err, errcodes.SnapshotCorrupted) {
		logger(ctx).Warn("snapshot unreadable, starting from empty history", logx.Error(err))
		return entity.CatalogSnapshot{}, nil
	}

	logger(ctx).Error("snapshot load failed", slog.Any(logx.FieldError, err))

	return nil, fmt.Errorf("load snapshot: %w", err)
}
