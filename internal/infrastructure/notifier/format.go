package notifier

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"gifts_buyer/internal/domain/entity"
	"gifts_buyer/internal/i18n"
)

// RecipientReference renders a recipient for HTML messages.
func RecipientReference(recipient entity.PeerRef, info entity.ChatInfo) string {
	id := info.ID
	if id == 0 {
		id = recipient.ID
	}

	switch {
	case info.Username != "" && id != 0:
		return "@" + info.Username + " | <code>" + strconv.FormatInt(id, 10) + "</code>"
	case info.Username != "":
		return "@" + info.Username
	case recipient.IsUsername():
		return "@" + recipient.Username
	default:
		idText := strconv.FormatInt(id, 10)
		return `<a href="tg://user?id=` + idText + `">` + idText + `</a>`
	}
}

// RangeLines renders one line per configured range.
func RangeLines(tr *i18n.Translator, ranges []entity.GiftRange) string {
	lines := lo.Map(ranges, func(r entity.GiftRange, _ int) string {
		return tr.T("telegram.range_line", i18n.Args{
			"min":        r.MinPrice,
			"max":        r.MaxPrice,
			"supply":     r.SupplyLimit,
			"quantity":   r.Quantity,
			"recipients": len(r.Recipients),
		})
	})

	return strings.Join(lines, "\n")
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
