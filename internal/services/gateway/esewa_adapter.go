package gateway

import (
	"context"
	"fmt"

	"event-solution/internal/services/gateway/esewa"
	"event-solution/internal/status"
)

// EsewaAdapter wraps the eSewa client to conform to PaymentGateway.
type EsewaAdapter struct {
	client *esewa.Esewa
}

// NewEsewaAdapter creates a new eSewa adapter.
func NewEsewaAdapter(ctx context.Context, config *esewa.Config) (*EsewaAdapter, error) {
	return &EsewaAdapter{
		client: esewa.New(ctx, config),
	}, nil
}

// Provider returns the payment provider type.
func (e *EsewaAdapter) Provider() Provider {
	return ProviderEsewa
}

// Initiate builds the signed checkout URL locally. The paisa to rupee
// conversion happens inside the client before signing.
func (e *EsewaAdapter) Initiate(_ context.Context, order *Order) (string, error) {
	form := &esewa.PaymentForm{
		Amount:  order.Amount,
		OrderID: order.OrderID,
	}

	redirectURL, err := e.client.BuildCheckoutURL(form)
	if err != nil {
		return "", fmt.Errorf("esewa initiate: %w", err)
	}

	return redirectURL, nil
}

// Verify checks the transaction against the eSewa inquiry api.
func (e *EsewaAdapter) Verify(ctx context.Context, q *VerifyQuery) (*status.Transaction, error) {
	return e.client.CheckTransaction(ctx, q.OrderID, q.Amount)
}

// Close gracefully closes any connections.
func (e *EsewaAdapter) Close(ctx context.Context) error {
	// eSewa holds no long-lived connections.
	return nil
}
