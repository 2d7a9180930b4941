// Package view renders admin bot replies.
package view

import (
	"html"

	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/internal/i18n"
	"gifts_buyer/internal/infrastructure/notifier"
	"gifts_buyer/internal/worker"
)

const timeLayout = "02.01.06 15:04:05"

func Help(tr *i18n.Translator) string {
	return tr.T("bot.help", nil)
}

func Status(tr *i18n.Translator, status worker.CycleStatus, ok bool) string {
	if !ok {
		return tr.T("bot.status_never", nil)
	}

	text := tr.T("bot.status", i18n.Args{
		"time":      status.FinishedAt.Format(timeLayout),
		"new":       status.NewGifts,
		"purchased": status.Purchased,
		"skipped":   status.Skipped.Total() + status.Mismatched,
		"errors":    status.Errors,
		"known":     status.Known,
	})

	if status.Err != nil {
		text += "\n\n<pre>" + html.EscapeString(status.Err.Error()) + "</pre>"
	}

	return text
}

func Balance(tr *i18n.Translator, balance int64) string {
	return tr.T("bot.balance", i18n.Args{"balance": balance})
}

func BalanceError(tr *i18n.Translator) string {
	return tr.T("bot.balance_error", nil)
}

func Ranges(tr *i18n.Translator, ranges []entity.GiftRange) string {
	return tr.T("bot.ranges_header", nil) + "\n" + notifier.RangeLines(tr, ranges)
}
