package entity

// ExclusionReason names the rule that excluded a gift from purchase.
type ExclusionReason string

const (
	ExclusionSoldOut       ExclusionReason = "sold_out"
	ExclusionNonLimited    ExclusionReason = "non_limited_blocked"
	ExclusionNonUpgradable ExclusionReason = "non_upgradable_blocked"
)

// SkipCounts aggregates excluded gifts of one cycle by reason.
type SkipCounts struct {
	SoldOut       int
	NonLimited    int
	NonUpgradable int
}

func (s *SkipCounts) Add(reason ExclusionReason) {
	switch reason {
	case ExclusionSoldOut:
		s.SoldOut++
	case ExclusionNonLimited:
		s.NonLimited++
	case ExclusionNonUpgradable:
		s.NonUpgradable++
	}
}

func (s SkipCounts) Total() int {
	return s.SoldOut + s.NonLimited + s.NonUpgradable
}
