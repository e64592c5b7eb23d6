package models

import (
	"encoding/json"
	"testing"

	"event-solution/internal/status"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketSelection_JSONRoundTrip(t *testing.T) {
	selection := TicketSelection{
		Label:     "VIP",
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("1500.50"),
	}

	jsonData, err := json.Marshal(selection)
	require.NoError(t, err)

	var unmarshaled TicketSelection
	require.NoError(t, json.Unmarshal(jsonData, &unmarshaled))

	assert.Equal(t, selection.Label, unmarshaled.Label)
	assert.Equal(t, selection.Quantity, unmarshaled.Quantity)
	// decimal must survive the round trip exactly, not approximately.
	assert.True(t, selection.UnitPrice.Equal(unmarshaled.UnitPrice))
}

func TestTicketRequest_JSONSerialization(t *testing.T) {
	request := TicketRequest{
		ID:            "req-123",
		Name:          "Ram Shrestha",
		Phone:         "9841000000",
		Email:         "ram@example.com",
		EventName:     "Tech Summit 2026",
		EventID:       "ev-1",
		Amount:        50000,
		Status:        status.RequestPending,
		PaymentStatus: status.PaymentUnpaid,
		TicketDetails: []TicketSelection{
			{Label: "General", Quantity: 1, UnitPrice: decimal.NewFromInt(500)},
		},
	}

	jsonData, err := json.Marshal(request)
	require.NoError(t, err)

	var unmarshaled TicketRequest
	require.NoError(t, json.Unmarshal(jsonData, &unmarshaled))

	assert.Equal(t, request.ID, unmarshaled.ID)
	assert.Equal(t, request.Name, unmarshaled.Name)
	assert.Equal(t, request.Amount, unmarshaled.Amount)
	assert.Equal(t, request.Status, unmarshaled.Status)
	assert.Equal(t, request.PaymentStatus, unmarshaled.PaymentStatus)
	require.Len(t, unmarshaled.TicketDetails, 1)
	assert.Equal(t, "General", unmarshaled.TicketDetails[0].Label)
}

func TestTicketRequest_OptionalFieldsOmitted(t *testing.T) {
	request := TicketRequest{ID: "req-123", Name: "Ram", Phone: "98", Email: "r@x.com", EventName: "E"}

	jsonData, err := json.Marshal(request)
	require.NoError(t, err)

	assert.NotContains(t, string(jsonData), "organization")
	assert.NotContains(t, string(jsonData), "payment_ref")
	assert.NotContains(t, string(jsonData), "ticket_details")
}

func TestEvent_HasTemplate(t *testing.T) {
	tests := []struct {
		name  string
		event *Event
		want  bool
	}{
		{"with template", &Event{ID: "ev-1", TicketTemplate: "template.png"}, true},
		{"without template", &Event{ID: "ev-1"}, false},
		{"nil event", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.HasTemplate())
		})
	}
}
