package gateway

import (
	"context"
	"fmt"

	"event-solution/internal/status"
)

// Provider represents the supported payment providers.
type Provider string

const (
	ProviderKhalti Provider = "khalti"
	ProviderEsewa  Provider = "esewa"
)

// ParseProvider maps a submitted payment method to a Provider. An empty
// value selects Khalti; anything outside the closed set is an error so a
// typo can never fall through to a silent no-op.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case "":
		return ProviderKhalti, nil
	case ProviderKhalti, ProviderEsewa:
		return Provider(s), nil
	default:
		return "", fmt.Errorf("unsupported payment provider: %q", s)
	}
}

// Order identifies one payment to initiate. Amount is in paisa;
// providers that bill in rupees convert internally.
type Order struct {
	Amount    int64  `json:"amount"`
	OrderID   string `json:"order_id"`
	OrderName string `json:"order_name"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	// ReferenceLabel is a short operator-facing code attached to the
	// transaction on the provider side.
	ReferenceLabel string `json:"reference_label,omitempty"`
}

// VerifyQuery carries the identifiers a provider callback reports back.
type VerifyQuery struct {
	OrderID string `json:"order_id"`
	Token   string `json:"token,omitempty"`
	Amount  int64  `json:"amount,omitempty"`
}

// PaymentGateway is the common capability both providers implement:
// given an amount and order identity, produce a redirect URL or fail.
type PaymentGateway interface {
	// Provider returns the payment provider type.
	Provider() Provider

	// Initiate starts a payment and returns the URL the customer must
	// be redirected to.
	Initiate(ctx context.Context, order *Order) (string, error)

	// Verify checks a reported payment against the provider.
	Verify(ctx context.Context, q *VerifyQuery) (*status.Transaction, error)

	// Close gracefully closes any connections.
	Close(ctx context.Context) error
}
