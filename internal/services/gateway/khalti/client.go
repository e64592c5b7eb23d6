package khalti

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

type ClientConfig struct {
	BaseURL   string `json:"baseUrl" mapstructure:"base_url"`
	SecretKey string `json:"secretKey" mapstructure:"secret_key"`
	ReturnURL string `json:"returnUrl" mapstructure:"return_url"`
	SiteURL   string `json:"siteUrl" mapstructure:"site_url"`

	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

type Client struct {
	// baseURL is the base url of the Khalti ePayment backend.
	baseURL string

	// secretKey authenticates every call ("Key <secret>" header).
	secretKey string

	// returnURL is where Khalti redirects the customer after payment.
	returnURL string

	// siteURL is the merchant site url Khalti displays to the payer.
	siteURL string

	// hc is the http client.
	hc *http.Client
}

// newClient creates new instance of the Khalti ePayment client.
func newClient(_ context.Context, c *ClientConfig) *Client {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:   c.BaseURL,
		secretKey: c.SecretKey,
		returnURL: c.ReturnURL,
		siteURL:   c.SiteURL,

		// set http client with timeout.
		hc: &http.Client{
			Timeout: timeout,
		},
	}
}

type initiatePayload struct {
	ReturnURL       string       `json:"return_url"`
	WebsiteURL      string       `json:"website_url"`
	Amount          int64        `json:"amount"`
	PurchaseOrderID string       `json:"purchase_order_id"`
	PurchaseOrder   string       `json:"purchase_order_name"`
	CustomerInfo    customerInfo `json:"customer_info"`
}

type customerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// initiate registers the payment with Khalti and returns the hosted
// payment URL. Amount is in paisa, which is what Khalti expects.
func (c *Client) initiate(ctx context.Context, p *initiatePayload) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("initiateKhalti: json.Marshal: %w", err)
	}
	body := bytes.NewReader(b)

	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", _baseURL.String(), "/api/v2/epayment/initiate/"), body)
	if err != nil {
		return "", fmt.Errorf("initiateKhalti: http.NewReq: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Key %s", c.secretKey))

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("initiateKhalti: http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rbody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("initiateKhalti: resp.StatusCode: %d, resp.Body: %s", resp.StatusCode, rbody)
	}

	var reply struct {
		Pidx       string `json:"pidx"`
		PaymentURL string `json:"payment_url"`
		ExpiresAt  string `json:"expires_at"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return "", fmt.Errorf("initiateKhalti: json.Decode: %w", err)
	}

	// The call can succeed and still return nothing usable.
	if reply.PaymentURL == "" {
		return "", errors.New("initiateKhalti: provider returned no payment_url")
	}

	return reply.PaymentURL, nil
}

type lookupReply struct {
	Pidx          string          `json:"pidx"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id"`
	Refunded      bool            `json:"refunded"`
}

// lookup checks transaction state with Khalti by pidx.
func (c *Client) lookup(ctx context.Context, pidx string) (*lookupReply, error) {
	body := bytes.NewReader([]byte(fmt.Sprintf(`{"pidx":%q}`, pidx)))

	_baseURL, _ := url.Parse(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", _baseURL.String(), "/api/v2/epayment/lookup/"), body)
	if err != nil {
		return nil, fmt.Errorf("lookupKhalti: http.NewReq: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Key %s", c.secretKey))

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookupKhalti: http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rbody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("lookupKhalti: resp.StatusCode: %d, resp.Body: %s", resp.StatusCode, rbody)
	}

	var reply lookupReply
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&reply); err != nil {
		return nil, fmt.Errorf("lookupKhalti: json.Decode: %w", err)
	}

	return &reply, nil
}
