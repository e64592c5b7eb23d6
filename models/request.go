package models

import (
	"time"

	"event-solution/internal/status"

	"github.com/shopspring/decimal"
)

// TicketRequest is a customer's request for event tickets.
// Amount is stored in paisa (minor units, NPR x100) to avoid floating point.
type TicketRequest struct {
	ID string `json:"id"`

	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address,omitempty"`
	JobTitle     string `json:"job_title,omitempty"`
	Organization string `json:"organization,omitempty"`
	Website      string `json:"website,omitempty"`

	EventName string `json:"event_name"`
	EventID   string `json:"event_id,omitempty"`

	Amount        int64                `json:"amount"`
	TicketDetails []TicketSelection    `json:"ticket_details,omitempty"`
	Status        status.RequestStatus `json:"status"`
	PaymentStatus status.PaymentStatus `json:"payment_status"`
	PaymentRef    string               `json:"payment_ref,omitempty"`

	Created time.Time `json:"created"`
}

// TicketSelection is one selected ticket type. The current UI always
// submits quantity 1 but nothing here may assume that.
type TicketSelection struct {
	Label     string          `json:"label"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
