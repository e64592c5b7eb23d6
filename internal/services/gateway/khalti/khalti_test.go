package khalti

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"event-solution/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKhalti(baseURL string) *Khalti {
	return New(context.Background(), &Config{
		BaseURL:   baseURL,
		SecretKey: "test-secret",
		ReturnURL: "https://example.com/api/v1/payment/callback/khalti",
		SiteURL:   "https://example.com",
	})
}

func TestKhalti_InitiatePayment_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v2/epayment/initiate/", r.URL.Path)
		assert.Equal(t, "Key test-secret", r.Header.Get("Authorization"))

		var payload map[string]any
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload)) {
			assert.Equal(t, float64(50000), payload["amount"])
			assert.Equal(t, "req-123", payload["purchase_order_id"])
			assert.Equal(t, "https://example.com/api/v1/payment/callback/khalti", payload["return_url"])

			customer, _ := payload["customer_info"].(map[string]any)
			assert.Equal(t, "Ram Shrestha", customer["name"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pidx":"abc123","payment_url":"https://test-pay.khalti.com/?pidx=abc123","expires_at":"2026-09-01T00:00:00+05:45"}`))
	}))
	defer srv.Close()

	k := testKhalti(srv.URL)

	paymentURL, err := k.InitiatePayment(context.Background(), &PaymentForm{
		Amount:        50000,
		OrderID:       "req-123",
		OrderName:     "Tech Summit 2026 tickets",
		CustomerName:  "Ram Shrestha",
		CustomerEmail: "ram@example.com",
		CustomerPhone: "9841000000",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://test-pay.khalti.com/?pidx=abc123", paymentURL)
}

func TestKhalti_InitiatePayment_EmptyPaymentURLIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with no payment_url happens on provider side issues.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pidx":"abc123","payment_url":""}`))
	}))
	defer srv.Close()

	k := testKhalti(srv.URL)

	_, err := k.InitiatePayment(context.Background(), &PaymentForm{Amount: 50000, OrderID: "req-123"})
	assert.ErrorContains(t, err, "no payment_url")
}

func TestKhalti_InitiatePayment_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Invalid token."}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	k := testKhalti(srv.URL)

	_, err := k.InitiatePayment(context.Background(), &PaymentForm{Amount: 50000, OrderID: "req-123"})
	assert.ErrorContains(t, err, "401")
}

func TestKhalti_CheckTransaction_Completed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/epayment/lookup/", r.URL.Path)

		var payload map[string]string
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload)) {
			assert.Equal(t, "abc123", payload["pidx"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pidx":"abc123","total_amount":50000,"status":"Completed","transaction_id":"TXN-777","refunded":false}`))
	}))
	defer srv.Close()

	k := testKhalti(srv.URL)

	tx, err := k.CheckTransaction(context.Background(), "req-123", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "khalti", tx.Provider)
	assert.Equal(t, "req-123", tx.OrderID)
	assert.Equal(t, "TXN-777", tx.RefID)
	assert.True(t, tx.Completed)
	// 50000 paisa reported by Khalti, 500 rupees on the transaction.
	assert.Equal(t, "500", tx.Amount.String())
}

func TestKhalti_CheckTransaction_NotCompleted(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"pending", `{"pidx":"abc123","status":"Pending","refunded":false}`},
		{"expired", `{"pidx":"abc123","status":"Expired","refunded":false}`},
		{"refunded", `{"pidx":"abc123","status":"Completed","refunded":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			k := testKhalti(srv.URL)

			_, err := k.CheckTransaction(context.Background(), "req-123", "abc123")
			assert.ErrorIs(t, err, status.ErrPaymentFailed)
		})
	}
}
