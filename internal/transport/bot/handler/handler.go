package handler

import (
	"context"

	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/internal/i18n"
	"gifts_buyer/internal/worker"
	"gifts_buyer/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type StatusSource interface {
	Status() (worker.CycleStatus, bool)
}

type BalanceSource interface {
	Balance(ctx context.Context) (int64, error)
}

type Handler struct {
	status  StatusSource
	balance BalanceSource
	ranges  []entity.GiftRange
	tr      *i18n.Translator
}

func New(status StatusSource, balance BalanceSource, ranges []entity.GiftRange, tr *i18n.Translator) *Handler {
	return &Handler{
		status:  status,
		balance: balance,
		ranges:  ranges,
		tr:      tr,
	}
}
