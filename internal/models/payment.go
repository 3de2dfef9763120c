package models

import "encoding/json"

// RazorpayOrderRequest is the create-razorpay-order body. Amount is kept
// untyped so that non-numeric values can be told apart from a missing one.
type RazorpayOrderRequest struct {
	Amount   interface{} `json:"amount"`
	Currency string      `json:"currency"`
	Receipt  string      `json:"receipt"`
}

// RazorpayOrderPayload is what the gateway's order API receives.
// Amount is in minor currency units.
type RazorpayOrderPayload struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// RazorpayOrder is the subset of the gateway order relayed to the caller.
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// RazorpayOrderResponse is the create-razorpay-order success body.
type RazorpayOrderResponse struct {
	Success bool          `json:"success"`
	Order   RazorpayOrder `json:"order"`
	KeyID   string        `json:"keyId,omitempty"`
}

// PaymentConfirmation is the confirm-payment body sent by the checkout widget
// callback.
type PaymentConfirmation struct {
	RazorpayPaymentID string   `json:"razorpay_payment_id"`
	RazorpayOrderID   string   `json:"razorpay_order_id"`
	RazorpaySignature string   `json:"razorpay_signature"`
	BookingID         ID       `json:"bookingId"`
	HotelID           ID       `json:"hotelId"`
	Amount            *float64 `json:"amount"`
	Currency          string   `json:"currency"`
}

// ExternalPaymentRecord is the recordExternalPayment request body.
type ExternalPaymentRecord struct {
	HotelID                         ID       `json:"hotel_id,omitempty"`
	BookingID                       ID       `json:"booking_id"`
	BookingSource                   string   `json:"booking_source"`
	ModuleSource                    string   `json:"module_source"`
	Amount                          *float64 `json:"amount,omitempty"`
	Currency                        string   `json:"currency"`
	PaymentGatewayID                string   `json:"payment_gateway_id"`
	PGName                          string   `json:"pg_name"`
	RequiresPostPaymentConfirmation string   `json:"requires_post_payment_confirmation"`
	Notes                           string   `json:"notes"`
	GatewayMessage                  string   `json:"gateway_message"`
	PaymentType                     string   `json:"payment_type"`
	PaymentIssuer                   string   `json:"payment_issuer"`
	PaymentMode                     string   `json:"payment_mode"`
	Status                          string   `json:"status"`
}

// PaymentConfirmationResponse is the confirm-payment success body.
type PaymentConfirmationResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message,omitempty"`
	BookingID     ID              `json:"bookingId"`
	PaymentID     string          `json:"paymentId"`
	PaymentResult json.RawMessage `json:"paymentResult"`
}

// Payment record constants
const (
	DefaultCurrency       = "INR"
	PaymentBookingSource  = "CUSTOM_BE"
	PaymentModuleSource   = "CUSTOM_BE_PAYMENT"
	PaymentGatewayName    = "RAZORPAY"
	PaymentTypeCreditCard = "Credit card"
	PaymentModeOnline     = "ONLINE"
	PaymentStatusSuccess  = "SUCCESS"
)

// ConfirmationState tracks a confirm-payment request through its steps.
type ConfirmationState string

// Confirmation states. SignatureInvalid and RecordingFailed are terminal
// failures.
const (
	StateReceived         ConfirmationState = "Received"
	StateSignatureChecked ConfirmationState = "SignatureChecked"
	StatePaymentRecorded  ConfirmationState = "PaymentRecorded"
	StateConfirmed        ConfirmationState = "Confirmed"
	StateSignatureInvalid ConfirmationState = "SignatureInvalid"
	StateRecordingFailed  ConfirmationState = "RecordingFailed"
)
