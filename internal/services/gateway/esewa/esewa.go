package esewa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"event-solution/internal/status"

	"github.com/shopspring/decimal"
)

type Config struct {
	BaseURL      string `json:"base_url" mapstructure:"base_url"`
	MerchantCode string `json:"merchant_code" mapstructure:"merchant_code"`
	SecretKey    string `json:"secret_key" mapstructure:"secret_key"`

	SuccessURL string `json:"success_url" mapstructure:"success_url"`
	FailureURL string `json:"failure_url" mapstructure:"failure_url"`

	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// Esewa builds signed eSewa checkout URLs locally. Unlike Khalti there
// is no initiation round-trip; only the status inquiry goes over the
// network.
type Esewa struct {
	baseURL      string
	merchantCode string
	secretKey    string
	successURL   string
	failureURL   string

	// hc is the http client, used for transaction inquiries only.
	hc *http.Client
}

// New returns a new Esewa instance.
func New(_ context.Context, cfg *Config) *Esewa {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Esewa{
		baseURL:      cfg.BaseURL,
		merchantCode: cfg.MerchantCode,
		secretKey:    cfg.SecretKey,
		successURL:   cfg.SuccessURL,
		failureURL:   cfg.FailureURL,

		hc: &http.Client{
			Timeout: timeout,
		},
	}
}

// PaymentForm describes one payment to hand to eSewa.
type PaymentForm struct {
	// Amount is in paisa. eSewa bills in rupees; BuildCheckoutURL
	// converts before signing.
	Amount int64

	OrderID string
}

// BuildCheckoutURL constructs the signed checkout URL. It fails only
// on malformed input; there is no network call involved.
func (e *Esewa) BuildCheckoutURL(f *PaymentForm) (string, error) {
	if f.Amount <= 0 {
		return "", fmt.Errorf("buildCheckoutURL: non-positive amount: %d", f.Amount)
	}
	if f.OrderID == "" {
		return "", errors.New("buildCheckoutURL: empty order id")
	}
	if e.merchantCode == "" {
		return "", errors.New("buildCheckoutURL: merchant code not configured")
	}

	// eSewa amounts are in rupees, the caller's are in paisa.
	total := decimal.NewFromInt(f.Amount).Div(decimal.NewFromInt(100)).String()

	// signed_field_names order is fixed by the provider.
	message := fmt.Sprintf("total_amount=%s,transaction_uuid=%s,product_code=%s", total, f.OrderID, e.merchantCode)
	signature := signMessage([]byte(e.secretKey), []byte(message))

	q := url.Values{}
	q.Set("amount", total)
	q.Set("tax_amount", "0")
	q.Set("total_amount", total)
	q.Set("transaction_uuid", f.OrderID)
	q.Set("product_code", e.merchantCode)
	q.Set("product_service_charge", "0")
	q.Set("product_delivery_charge", "0")
	q.Set("success_url", e.successURL)
	q.Set("failure_url", e.failureURL)
	q.Set("signed_field_names", "total_amount,transaction_uuid,product_code")
	q.Set("signature", signature)

	_baseURL, err := url.Parse(e.baseURL)
	if err != nil {
		return "", fmt.Errorf("buildCheckoutURL: url.Parse: %w", err)
	}

	return fmt.Sprintf("%s/api/epay/main/v2/form?%s", _baseURL.String(), q.Encode()), nil
}

// CheckTransaction checks transaction status from the eSewa inquiry api.
func (e *Esewa) CheckTransaction(ctx context.Context, orderID string, amount int64) (*status.Transaction, error) {
	total := decimal.NewFromInt(amount).Div(decimal.NewFromInt(100))

	q := url.Values{}
	q.Set("product_code", e.merchantCode)
	q.Set("total_amount", total.String())
	q.Set("transaction_uuid", orderID)

	_baseURL, _ := url.Parse(e.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/epay/transaction/status/?%s", _baseURL.String(), q.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("checkTransactionEsewa: http.NewReq: %w", err)
	}

	resp, err := e.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkTransactionEsewa: http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rbody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("checkTransactionEsewa: resp.StatusCode: %d, resp.Body: %s", resp.StatusCode, rbody)
	}

	var reply struct {
		ProductCode     string          `json:"product_code"`
		TransactionUUID string          `json:"transaction_uuid"`
		TotalAmount     decimal.Decimal `json:"total_amount"`
		Status          string          `json:"status"`
		RefID           string          `json:"ref_id"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("checkTransactionEsewa: json.Decode: %w", err)
	}

	if reply.Status != "COMPLETE" {
		return nil, status.ErrPaymentFailed
	}

	return &status.Transaction{
		Provider:  "esewa",
		OrderID:   reply.TransactionUUID,
		RefID:     reply.RefID,
		Amount:    reply.TotalAmount,
		Currency:  "NPR",
		Completed: true,
		PaidAt:    time.Now(),
	}, nil
}
