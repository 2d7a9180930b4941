package service

import (
	"strings"

	"github.com/gotd/td/tgerr"

	"gifts_buyer/internal/domain"
	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/pkg/errcodes"
)

type failureRule struct {
	class entity.FailureClass
	types []string
	codes []errcodes.ErrorCode
}

//nolint:gochecknoglobals
var failureRules = []failureRule{
	{
		class: entity.FailureInsufficientFunds,
		types: []string{"BALANCE_TOO_LOW"},
	},
	{
		class: entity.FailureSoldOut,
		types: []string{"STARGIFT_USAGE_LIMITED"},
	},
	{
		class: entity.FailureInvalidRecipient,
		types: []string{"PEER_ID_INVALID", "USER_ID_INVALID", "USERNAME_NOT_OCCUPIED", "USERNAME_INVALID"},
		codes: []errcodes.ErrorCode{errcodes.PeerNotResolved},
	},
}

func (r failureRule) matches(err error) bool {
	if tgerr.Is(err, r.types...) {
		return true
	}

	for _, code := range r.codes {
		if domain.HasCode(err, code) {
			return true
		}
	}

	text := err.Error()
	for _, t := range r.types {
		if strings.Contains(text, t) {
			return true
		}
	}

	return false
}

// ClassifyFailure maps a purchase error to its class. Rules are checked in
// order and the first match wins.
func ClassifyFailure(err error) entity.FailureClass {
	if err == nil {
		return entity.FailureNone
	}

	for _, rule := range failureRules {
		if rule.matches(err) {
			return rule.class
		}
	}

	return entity.FailureUnknown
}
