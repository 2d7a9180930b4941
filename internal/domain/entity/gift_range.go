package entity

// GiftRange is a price/supply bracket mapped to a quantity and recipients.
type GiftRange struct {
	MinPrice    int64     `validate:"gte=0"`
	MaxPrice    int64     `validate:"gtefield=MinPrice"`
	SupplyLimit int64     `validate:"gte=0"`
	Quantity    int       `validate:"gte=1"`
	Recipients  []PeerRef `validate:"min=1,dive"`
}

// Covers reports whether price and supply fall inside the bracket.
func (r GiftRange) Covers(price, supply int64) bool {
	return r.MinPrice <= price && price <= r.MaxPrice && supply <= r.SupplyLimit
}
