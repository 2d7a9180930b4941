package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gifts_buyer/internal/domain"
	"gifts_buyer/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	rq := require.New(t)

	cause := errors.New("connection reset")

	testCases := []struct {
		name    string
		err     error
		message string
		code    errcodes.ErrorCode
		isApp   bool
	}{
		{
			name:    "New error",
			err:     domain.NewError(errcodes.ConfigInvalid, "no ranges"),
			message: "no ranges",
			code:    errcodes.ConfigInvalid,
			isApp:   true,
		},
		{
			name:    "Wrapped error",
			err:     domain.WrapError(cause, errcodes.CatalogUnavailable, "fetch catalog"),
			message: "fetch catalog: connection reset",
			code:    errcodes.CatalogUnavailable,
			isApp:   true,
		},
		{
			name:    "Wrapped by fmt",
			err:     fmt.Errorf("cycle: %w", domain.WrapError(cause, errcodes.BalanceUnavailable, "balance")),
			message: "cycle: balance: connection reset",
			code:    errcodes.BalanceUnavailable,
			isApp:   true,
		},
		{
			name:    "Plain error",
			err:     cause,
			message: "connection reset",
			isApp:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.message, tc.err.Error())
			rq.Equal(tc.isApp, domain.IsAppError(tc.err))

			code, ok := domain.GetCode(tc.err)
			rq.Equal(tc.isApp, ok)
			rq.Equal(tc.code, code)
			rq.Equal(tc.isApp, domain.HasCode(tc.err, tc.code))
		})
	}

	rq.ErrorIs(domain.WrapError(cause, errcodes.InternalError, "x"), cause)
}
