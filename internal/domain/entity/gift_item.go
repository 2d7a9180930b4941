package entity

// GiftItem is one purchasable gift as listed by the platform catalog.
// TotalAmount and AvailableAmount are only reported for limited gifts,
// UpgradePrice only for upgradable ones.
type GiftItem struct {
	ID              int64
	Title           string
	Price           int64
	IsLimited       bool
	IsSoldOut       bool
	TotalAmount     *int64
	AvailableAmount *int64
	UpgradePrice    *int64

	// Position is assigned while ranking and never persisted.
	Position int
}

func (g GiftItem) HasUpgrade() bool {
	return g.UpgradePrice != nil
}

// Supply returns the total supply of a limited gift. ok is false for
// unlimited gifts and for limited gifts without a reported amount.
func (g GiftItem) Supply() (int64, bool) {
	if !g.IsLimited || g.TotalAmount == nil {
		return 0, false
	}

	return *g.TotalAmount, true
}

// MatchSupply is the supply used for range matching: zero unless limited.
func (g GiftItem) MatchSupply() int64 {
	supply, _ := g.Supply()
	return supply
}

// CatalogSnapshot maps gift id to the last observed item.
type CatalogSnapshot map[int64]GiftItem

func NewCatalogSnapshot(items []GiftItem) CatalogSnapshot {
	snapshot := make(CatalogSnapshot, len(items))
	for _, item := range items {
		snapshot[item.ID] = item
	}

	return snapshot
}

// Items returns snapshot values in the given id order, ids missing from
// the snapshot are skipped.
func (s CatalogSnapshot) Items(order []int64) []GiftItem {
	items := make([]GiftItem, 0, len(s))
	for _, id := range order {
		if item, ok := s[id]; ok {
			items = append(items, item)
		}
	}

	return items
}
