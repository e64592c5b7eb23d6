package status

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrRequestNotFound       = errors.New("ticket request: not found")
	ErrEventNotFound         = errors.New("event: not found")
	ErrMissingRequiredFields = errors.New("ticket request: missing required fields")
	ErrPaymentFailed         = errors.New("payment: payment failed")
)

// RequestStatus is the operator-driven workflow state of a ticket request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestContacted RequestStatus = "CONTACTED"
	RequestResolved  RequestStatus = "RESOLVED"
)

// ParseRequestStatus rejects anything outside the closed status set.
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case RequestPending, RequestContacted, RequestResolved:
		return RequestStatus(s), nil
	default:
		return "", fmt.Errorf("unknown request status: %q", s)
	}
}

// PaymentStatus tracks whether the request has been paid for.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "PAID"
	PaymentUnpaid PaymentStatus = "UNPAID"
)

// Transaction is a payment confirmation reported by a gateway,
// consumed by the callback handler against the request store.
type Transaction struct {
	Provider  string          `json:"provider"`
	OrderID   string          `json:"order_id"`
	RefID     string          `json:"ref_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Completed bool            `json:"completed"`
	PaidAt    time.Time       `json:"paid_at"`
}
