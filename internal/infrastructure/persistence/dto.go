package persistence

import (
	jsoniter "github.com/json-iterator/go"

	"gifts_buyer/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// giftRecord is the stored form of a catalog item. Field names follow the
// platform's star gift schema so history files stay readable by hand.
type giftRecord struct {
	ID              int64  `json:"id"`
	Title           string `json:"title,omitempty"`
	Price           int64  `json:"price"`
	IsLimited       bool   `json:"is_limited"`
	IsSoldOut       bool   `json:"is_sold_out"`
	TotalAmount     *int64 `json:"total_amount,omitempty"`
	AvailableAmount *int64 `json:"available_amount,omitempty"`
	UpgradePrice    *int64 `json:"upgrade_price,omitempty"`
}

func newGiftRecord(item entity.GiftItem) giftRecord {
	return giftRecord{
		ID:              item.ID,
		Title:           item.Title,
		Price:           item.Price,
		IsLimited:       item.IsLimited,
		IsSoldOut:       item.IsSoldOut,
		TotalAmount:     item.TotalAmount,
		AvailableAmount: item.AvailableAmount,
		UpgradePrice:    item.UpgradePrice,
	}
}

func (r giftRecord) toDomain() entity.GiftItem {
	return entity.GiftItem{
		ID:              r.ID,
		Title:           r.Title,
		Price:           r.Price,
		IsLimited:       r.IsLimited,
		IsSoldOut:       r.IsSoldOut,
		TotalAmount:     r.TotalAmount,
		AvailableAmount: r.AvailableAmount,
		UpgradePrice:    r.UpgradePrice,
	}
}

func newGiftRecords(items []entity.GiftItem) []giftRecord {
	records := make([]giftRecord, 0, len(items))
	for _, item := range items {
		records = append(records, newGiftRecord(item))
	}

	return records
}

func snapshotFromRecords(records []giftRecord) entity.CatalogSnapshot {
	snapshot := make(entity.CatalogSnapshot, len(records))
	for _, r := range records {
		snapshot[r.ID] = r.toDomain()
	}

	return snapshot
}
