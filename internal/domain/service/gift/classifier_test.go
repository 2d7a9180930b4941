package service_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gotd/td/tgerr"
	"github.com/stretchr/testify/require"

	"gifts_buyer/internal/domain"
	"gifts_buyer/internal/domain/entity"
	service "gifts_buyer/internal/domain/service/gift"
	"gifts_buyer/pkg/errcodes"
)

func TestClassifyFailure(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name string
		err  error
		want entity.FailureClass
	}{
		{name: "No error", err: nil, want: entity.FailureNone},
		{name: "RPC balance too low", err: tgerr.New(400, "BALANCE_TOO_LOW"), want: entity.FailureInsufficientFunds},
		{
			name: "Wrapped RPC sold out",
			err:  fmt.Errorf("send stars form: %w", tgerr.New(400, "STARGIFT_USAGE_LIMITED")),
			want: entity.FailureSoldOut,
		},
		{name: "RPC peer invalid", err: tgerr.New(400, "PEER_ID_INVALID"), want: entity.FailureInvalidRecipient},
		{name: "RPC username not occupied", err: tgerr.New(400, "USERNAME_NOT_OCCUPIED"), want: entity.FailureInvalidRecipient},
		{
			name: "Unresolved peer",
			err:  domain.WrapError(errors.New("no access hash"), errcodes.PeerNotResolved, "resolve 42"),
			want: entity.FailureInvalidRecipient,
		},
		{
			name: "Text fallback",
			err:  errors.New("rpc error code 400: BALANCE_TOO_LOW"),
			want: entity.FailureInsufficientFunds,
		},
		{name: "Flood wait is unknown", err: tgerr.New(420, "FLOOD_WAIT_30"), want: entity.FailureUnknown},
		{name: "Plain error is unknown", err: errors.New("connection reset"), want: entity.FailureUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.want, service.ClassifyFailure(tc.err))
		})
	}
}
