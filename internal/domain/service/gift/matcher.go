package service

import "gifts_buyer/internal/domain/entity"

// Match is the result of a successful bracket lookup.
type Match struct {
	Quantity   int
	Recipients []entity.PeerRef
}

// RangeMatcher finds the first configured bracket covering a gift.
type RangeMatcher struct {
	ranges []entity.GiftRange
}

func NewRangeMatcher(ranges []entity.GiftRange) RangeMatcher {
	return RangeMatcher{ranges: ranges}
}

// Match scans brackets in declaration order, first hit wins.
func (m RangeMatcher) Match(price, supply int64) (Match, bool) {
	for _, r := range m.ranges {
		if r.Covers(price, supply) {
			return Match{Quantity: r.Quantity, Recipients: r.Recipients}, true
		}
	}

	return Match{}, false
}
