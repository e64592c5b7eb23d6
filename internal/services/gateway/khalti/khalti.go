package khalti

import (
	"context"
	"time"

	"event-solution/internal/status"

	"github.com/shopspring/decimal"
)

type Config = ClientConfig

// Khalti drives the Khalti ePayment wallet: a network initiation call
// that hands back a hosted redirect URL.
type Khalti struct {
	client *Client
}

// New returns a new Khalti instance.
func New(ctx context.Context, cfg *Config) *Khalti {
	return &Khalti{
		client: newClient(ctx, cfg),
	}
}

// PaymentForm describes one payment to hand to Khalti.
type PaymentForm struct {
	// Amount is in paisa. Khalti bills in paisa, no conversion needed.
	Amount int64

	OrderID   string
	OrderName string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// InitiatePayment registers the order and returns the payment URL.
func (k *Khalti) InitiatePayment(ctx context.Context, f *PaymentForm) (string, error) {
	p := &initiatePayload{
		ReturnURL:       k.client.returnURL,
		WebsiteURL:      k.client.siteURL,
		Amount:          f.Amount,
		PurchaseOrderID: f.OrderID,
		PurchaseOrder:   f.OrderName,
		CustomerInfo: customerInfo{
			Name:  f.CustomerName,
			Email: f.CustomerEmail,
			Phone: f.CustomerPhone,
		},
	}

	return k.client.initiate(ctx, p)
}

// CheckTransaction looks up a transaction by the pidx token Khalti
// reported in the return callback.
func (k *Khalti) CheckTransaction(ctx context.Context, orderID, pidx string) (*status.Transaction, error) {
	reply, err := k.client.lookup(ctx, pidx)
	if err != nil {
		return nil, err
	}

	if reply.Status != "Completed" || reply.Refunded {
		return nil, status.ErrPaymentFailed
	}

	return &status.Transaction{
		Provider:  "khalti",
		OrderID:   orderID,
		RefID:     reply.TransactionID,
		Amount:    reply.TotalAmount.Div(decimal.NewFromInt(100)),
		Currency:  "NPR",
		Completed: true,
		PaidAt:    time.Now(),
	}, nil
}
