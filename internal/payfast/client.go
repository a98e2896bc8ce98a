// Package payfast talks to the PayFast hosted checkout. Payments are not
// processed in-process: the client builds the redirect to the hosted payment
// page and validates Instant Transaction Notifications (ITN) by posting them
// back to the gateway. Signing is left to the hosted flow.
package payfast

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	liveHost    = "https://www.payfast.co.za"
	sandboxHost = "https://sandbox.payfast.co.za"
)

// Subscription frequency codes as defined by the gateway.
const (
	FrequencyMonthly   = "3"
	FrequencyQuarterly = "4"
	FrequencyBiannual  = "5"
	FrequencyAnnual    = "6"
)

// ITN payment statuses.
const (
	StatusComplete  = "COMPLETE"
	StatusFailed    = "FAILED"
	StatusCancelled = "CANCELLED"
)

// Verifier validates an ITN payload with the gateway. The webhook handler
// depends on this interface so tests can stub the postback.
type Verifier interface {
	Verify(ctx context.Context, payload url.Values) (bool, error)
}

// PaymentRequest carries the fields of a hosted checkout redirect.
type PaymentRequest struct {
	ReturnURL    string
	CancelURL    string
	NotifyURL    string
	NameFirst    string
	NameLast     string
	EmailAddress string
	Amount       float64
	ItemName     string
}

// SubscriptionRequest extends PaymentRequest with recurring billing fields.
type SubscriptionRequest struct {
	PaymentRequest
	Frequency string
	Cycles    int // 0 = indefinite
}

// Client is a PayFast hosted-checkout client.
type Client struct {
	merchantID  string
	merchantKey string
	sandbox     bool
	httpClient  *http.Client
}

func NewClient(merchantID, merchantKey string, sandbox bool) *Client {
	return &Client{
		merchantID:  merchantID,
		merchantKey: merchantKey,
		sandbox:     sandbox,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) host() string {
	if c.sandbox {
		return sandboxHost
	}
	return liveHost
}

// paymentValues assembles checkout fields in the order the gateway expects.
func (c *Client) paymentValues(req PaymentRequest) url.Values {
	v := url.Values{}
	v.Set("merchant_id", c.merchantID)
	v.Set("merchant_key", c.merchantKey)
	v.Set("return_url", req.ReturnURL)
	v.Set("cancel_url", req.CancelURL)
	v.Set("notify_url", req.NotifyURL)
	v.Set("name_first", req.NameFirst)
	v.Set("name_last", req.NameLast)
	v.Set("email_address", req.EmailAddress)
	v.Set("amount", fmt.Sprintf("%.2f", req.Amount))
	v.Set("item_name", req.ItemName)
	return v
}

// PaymentURL returns the hosted checkout redirect URL for a once-off payment.
func (c *Client) PaymentURL(req PaymentRequest) string {
	return fmt.Sprintf("%s/eng/process?%s", c.host(), c.paymentValues(req).Encode())
}

// SubscriptionURL returns the hosted checkout redirect URL for a recurring
// subscription.
func (c *Client) SubscriptionURL(req SubscriptionRequest) string {
	v := c.paymentValues(req.PaymentRequest)
	v.Set("subscription_type", "1") // 1 = recurring
	v.Set("frequency", req.Frequency)
	v.Set("cycles", fmt.Sprintf("%d", req.Cycles))
	return fmt.Sprintf("%s/eng/process?%s", c.host(), v.Encode())
}

// Verify posts the raw ITN payload back to the gateway's validate endpoint.
// The gateway answers with the literal body "VALID" or "INVALID".
func (c *Client) Verify(ctx context.Context, payload url.Values) (bool, error) {
	validateURL := fmt.Sprintf("%s/eng/query/validate", c.host())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, validateURL, strings.NewReader(payload.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to create ITN validation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("ITN validation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return false, fmt.Errorf("failed to read ITN validation response: %w", err)
	}

	return strings.TrimSpace(string(body)) == "VALID", nil
}
