package service

import "gifts_buyer/internal/domain/entity"

type Verdict int

const (
	VerdictEligible Verdict = iota
	VerdictExcluded
	VerdictNoRange
)

func (v Verdict) String() string {
	switch v {
	case VerdictEligible:
		return "eligible"
	case VerdictExcluded:
		return "excluded"
	case VerdictNoRange:
		return "no_range"
	default:
		return "unknown"
	}
}

// Decision is the evaluation result for one gift. Reason is set only for
// VerdictExcluded, Match only for VerdictEligible.
type Decision struct {
	Verdict Verdict
	Reason  entity.ExclusionReason
	Match   Match
}

type exclusionRule struct {
	reason   entity.ExclusionReason
	excludes func(item entity.GiftItem) bool
}

// EligibilityEvaluator applies exclusion rules in a fixed order and then
// looks the gift up in the configured brackets.
type EligibilityEvaluator struct {
	rules   []exclusionRule
	matcher RangeMatcher
}

func NewEligibilityEvaluator(matcher RangeMatcher, onlyUpgradable bool) EligibilityEvaluator {
	return EligibilityEvaluator{
		matcher: matcher,
		rules: []exclusionRule{
			{
				reason:   entity.ExclusionSoldOut,
				excludes: func(item entity.GiftItem) bool { return item.IsSoldOut },
			},
			{
				reason:   entity.ExclusionNonLimited,
				excludes: func(item entity.GiftItem) bool { return !item.IsLimited },
			},
			{
				reason:   entity.ExclusionNonUpgradable,
				excludes: func(item entity.GiftItem) bool { return onlyUpgradable && !item.HasUpgrade() },
			},
		},
	}
}

func (e EligibilityEvaluator) Evaluate(item entity.GiftItem) Decision {
	for _, rule := range e.rules {
		if rule.excludes(item) {
			return Decision{Verdict: VerdictExcluded, Reason: rule.reason}
		}
	}

	match, ok := e.matcher.Match(item.Price, item.MatchSupply())
	if !ok {
		return Decision{Verdict: VerdictNoRange}
	}

	return Decision{Verdict: VerdictEligible, Match: match}
}
