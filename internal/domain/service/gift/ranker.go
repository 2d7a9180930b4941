package service

import (
	"cmp"
	"slices"

	"gifts_buyer/internal/domain/entity"
)

// PriorityRanker orders newly listed gifts for processing.
type PriorityRanker struct {
	prioritizeLowSupply bool
}

func NewPriorityRanker(prioritizeLowSupply bool) PriorityRanker {
	return PriorityRanker{prioritizeLowSupply: prioritizeLowSupply}
}

// Rank assigns Position = len(orderedIDs) - index and sorts ascending by
// it. With low-supply priority, limited gifts with a known supply go first,
// smallest supply first, position breaks ties.
func (r PriorityRanker) Rank(newItems entity.CatalogSnapshot, orderedIDs []int64) []entity.GiftItem {
	ranked := make([]entity.GiftItem, 0, len(newItems))

	for index, id := range orderedIDs {
		item, ok := newItems[id]
		if !ok {
			continue
		}

		item.Position = len(orderedIDs) - index
		ranked = append(ranked, item)
	}

	slices.SortStableFunc(ranked, func(a, b entity.GiftItem) int {
		return cmp.Compare(a.Position, b.Position)
	})

	if !r.prioritizeLowSupply {
		return ranked
	}

	slices.SortStableFunc(ranked, func(a, b entity.GiftItem) int {
		aSupply, aOK := a.Supply()
		bSupply, bOK := b.Supply()

		switch {
		case aOK && !bOK:
			return -1
		case !aOK && bOK:
			return 1
		case aOK && bOK && aSupply != bSupply:
			return cmp.Compare(aSupply, bSupply)
		default:
			return cmp.Compare(a.Position, b.Position)
		}
	})

	return ranked
}
