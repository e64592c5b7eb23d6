package gateway

import (
	"context"
	"fmt"

	"event-solution/internal/services/gateway/khalti"
	"event-solution/internal/status"
)

// KhaltiAdapter wraps the Khalti client to conform to PaymentGateway.
type KhaltiAdapter struct {
	client *khalti.Khalti
}

// NewKhaltiAdapter creates a new Khalti adapter.
func NewKhaltiAdapter(ctx context.Context, config *khalti.Config) (*KhaltiAdapter, error) {
	return &KhaltiAdapter{
		client: khalti.New(ctx, config),
	}, nil
}

// Provider returns the payment provider type.
func (k *KhaltiAdapter) Provider() Provider {
	return ProviderKhalti
}

// Initiate registers the order with Khalti and returns the hosted
// payment URL.
func (k *KhaltiAdapter) Initiate(ctx context.Context, order *Order) (string, error) {
	form := &khalti.PaymentForm{
		Amount:        order.Amount,
		OrderID:       order.OrderID,
		OrderName:     order.OrderName,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
	}

	redirectURL, err := k.client.InitiatePayment(ctx, form)
	if err != nil {
		return "", fmt.Errorf("khalti initiate: %w", err)
	}

	return redirectURL, nil
}

// Verify looks up the transaction by the pidx token from the callback.
func (k *KhaltiAdapter) Verify(ctx context.Context, q *VerifyQuery) (*status.Transaction, error) {
	return k.client.CheckTransaction(ctx, q.OrderID, q.Token)
}

// Close gracefully closes any connections.
func (k *KhaltiAdapter) Close(ctx context.Context) error {
	// Khalti holds no long-lived connections.
	return nil
}
