package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"gifts_buyer/internal/domain/entity"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals

type Gifts struct {
	RangesSpec          string  `env:"GIFT_RANGES" json:"giftRanges"`
	OnlyUpgradable      bool    `env:"PURCHASE_ONLY_UPGRADABLE_GIFTS" json:"onlyUpgradable"`
	PrioritizeLowSupply bool    `env:"PRIORITIZE_LOW_SUPPLY" json:"prioritizeLowSupply"`
	HideSenderName      bool    `env:"HIDE_SENDER_NAME" envDefault:"true" json:"hideSenderName"`
	IntervalSeconds     float64 `env:"INTERVAL" envDefault:"15" json:"interval"`
	Language            string  `env:"LANGUAGE" envDefault:"en" json:"language"`

	ranges   []entity.GiftRange
	rejected []RangeError
}

// Ranges returns the brackets that parsed and validated, in configured order.
func (g Gifts) Ranges() []entity.GiftRange {
	return g.ranges
}

// Rejected returns the entries dropped while parsing GIFT_RANGES.
func (g Gifts) Rejected() []RangeError {
	return g.rejected
}

func (g Gifts) Interval() time.Duration {
	return time.Duration(g.IntervalSeconds * float64(time.Second))
}

// WithRanges replaces the parsed brackets.
func (g Gifts) WithRanges(ranges []entity.GiftRange) Gifts {
	g.ranges = ranges
	return g
}

type RangeError struct {
	Entry string
	Err   error
}

func (e RangeError) Error() string {
	return fmt.Sprintf("invalid gift range %q: %v", e.Entry, e.Err)
}

func (e RangeError) Unwrap() error {
	return e.Err
}

// ParseRanges parses "min-max: supply x qty: r1, r2; ..." into brackets.
// Malformed entries are skipped and reported; the rest keep their order.
func ParseRanges(spec string) ([]entity.GiftRange, []RangeError) {
	var (
		ranges   []entity.GiftRange
		rejected []RangeError
	)

	for _, entry := range strings.Split(spec, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		r, err := parseRange(entry)
		if err != nil {
			rejected = append(rejected, RangeError{Entry: entry, Err: err})
			continue
		}

		ranges = append(ranges, r)
	}

	return ranges, rejected
}

func parseRange(entry string) (entity.GiftRange, error) {
	pricePart, rest, ok := strings.Cut(entry, ":")
	if !ok {
		return entity.GiftRange{}, errors.New("missing ':' after price bounds")
	}

	supplyQtyPart, recipientsPart, ok := strings.Cut(rest, ":")
	if !ok {
		return entity.GiftRange{}, errors.New("missing ':' before recipients")
	}

	minPart, maxPart, ok := strings.Cut(pricePart, "-")
	if !ok {
		return entity.GiftRange{}, errors.New("price bounds must look like min-max")
	}

	supplyPart, qtyPart, ok := strings.Cut(strings.ToLower(supplyQtyPart), "x")
	if !ok {
		return entity.GiftRange{}, errors.New("supply and quantity must look like supply x qty")
	}

	var (
		r   entity.GiftRange
		err error
	)

	if r.MinPrice, err = parseInt(minPart); err != nil {
		return entity.GiftRange{}, fmt.Errorf("min price: %w", err)
	}

	if r.MaxPrice, err = parseInt(maxPart); err != nil {
		return entity.GiftRange{}, fmt.Errorf("max price: %w", err)
	}

	if r.SupplyLimit, err = parseInt(supplyPart); err != nil {
		return entity.GiftRange{}, fmt.Errorf("supply limit: %w", err)
	}

	qty, err := parseInt(qtyPart)
	if err != nil {
		return entity.GiftRange{}, fmt.Errorf("quantity: %w", err)
	}

	r.Quantity = int(qty)

	for _, raw := range strings.Split(recipientsPart, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		peer, err := entity.ParsePeerRef(raw)
		if err != nil {
			return entity.GiftRange{}, fmt.Errorf("recipient: %w", err)
		}

		r.Recipients = append(r.Recipients, peer)
	}

	if err := validate.Struct(r); err != nil {
		return entity.GiftRange{}, fmt.Errorf("validate.Struct: %w", err)
	}

	return r, nil
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
