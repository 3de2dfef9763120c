// Package razorpay talks to the Razorpay orders API and verifies checkout
// callback signatures.
package razorpay

import (
	"context"
	"net/http"
	"time"

	"hotel_booking_edge/internal/models"
	"hotel_booking_edge/internal/upstream"
)

// Source names this upstream in errors and caller-facing messages.
const Source = "Razorpay"

// Client creates gateway orders using HTTP Basic auth.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// NewClient creates a new Razorpay client
func NewClient(baseURL, keyID, keySecret string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HasCredentials reports whether both key id and secret are set.
func (c *Client) HasCredentials() bool {
	return c.keyID != "" && c.keySecret != ""
}

// HasSecret reports whether callback signatures can be verified.
func (c *Client) HasSecret() bool {
	return c.keySecret != ""
}

// KeyID is the public key the checkout widget is opened with.
func (c *Client) KeyID() string {
	return c.keyID
}

// CreateOrder posts payload to /v1/orders. A non-2xx reply comes back as
// *upstream.UnavailableError with the gateway's status and body.
func (c *Client) CreateOrder(ctx context.Context, payload *models.RazorpayOrderPayload) (*models.RazorpayOrder, error) {
	req, err := upstream.NewJSONRequest(ctx, http.MethodPost, c.baseURL+"/v1/orders", payload)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := upstream.Do(c.httpClient, Source, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &upstream.UnavailableError{Source: Source, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var order models.RazorpayOrder
	if err := upstream.Decode(Source, resp, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyPaymentSignature checks a checkout callback signature with the
// client's secret.
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return VerifyPaymentSignature(orderID, paymentID, signature, c.keySecret)
}
