package services

import (
	"strconv"
	"strings"

	"event-solution/models"

	"github.com/shopspring/decimal"
)

// ResolveAmount computes the payable amount for a ticket request in
// paisa. A client-supplied total is trusted as-is and converted to
// minor units; the server does not re-derive it from the event's
// ticket-type price list. Without a total the event's flat ticket
// price is used, and anything unparsable degrades to zero rather than
// failing.
func ResolveAmount(total *decimal.Decimal, event *models.Event) int64 {
	if total != nil {
		amount := total.Mul(decimal.NewFromInt(100)).IntPart()
		if amount < 0 {
			return 0
		}
		return amount
	}

	if event == nil {
		return 0
	}

	price, err := strconv.Atoi(strings.TrimSpace(event.TicketPrice))
	if err != nil || price < 0 {
		return 0
	}

	return int64(price) * 100
}
