package services

import (
	"testing"

	"event-solution/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestResolveAmount_ClientTotalWins(t *testing.T) {
	event := &models.Event{ID: "ev-1", TicketPrice: "9999"}

	// 500 rupees becomes 50000 paisa regardless of the event price.
	amount := ResolveAmount(decimalPtr("500"), event)
	assert.Equal(t, int64(50000), amount)
}

func TestResolveAmount_FractionalTotal(t *testing.T) {
	amount := ResolveAmount(decimalPtr("499.50"), nil)
	assert.Equal(t, int64(49950), amount)
}

func TestResolveAmount_NegativeTotalClampsToZero(t *testing.T) {
	amount := ResolveAmount(decimalPtr("-10"), nil)
	assert.Equal(t, int64(0), amount)
}

func TestResolveAmount_FallsBackToEventPrice(t *testing.T) {
	event := &models.Event{ID: "ev-1", TicketPrice: "1500"}

	amount := ResolveAmount(nil, event)
	assert.Equal(t, int64(150000), amount)
}

func TestResolveAmount_EventPriceWithWhitespace(t *testing.T) {
	event := &models.Event{ID: "ev-1", TicketPrice: " 250 "}

	amount := ResolveAmount(nil, event)
	assert.Equal(t, int64(25000), amount)
}

func TestResolveAmount_DegradesToZero(t *testing.T) {
	tests := []struct {
		name  string
		event *models.Event
	}{
		{"nil event", nil},
		{"empty price", &models.Event{ID: "ev-1", TicketPrice: ""}},
		{"unparsable price", &models.Event{ID: "ev-1", TicketPrice: "free!"}},
		{"negative price", &models.Event{ID: "ev-1", TicketPrice: "-100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, int64(0), ResolveAmount(nil, tt.event))
		})
	}
}
