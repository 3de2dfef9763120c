package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"hotel_booking_edge/internal/models"
	"hotel_booking_edge/internal/razorpay"
	"hotel_booking_edge/internal/stayflexi"
)

// PaymentService handles gateway orders and payment confirmation
type PaymentService struct {
	gateway   *razorpay.Client
	stayflexi *stayflexi.Client
	now       func() time.Time
	randIntn  func(int) int
}

// NewPaymentService creates a new payment service
func NewPaymentService(gateway *razorpay.Client, sf *stayflexi.Client) *PaymentService {
	return &PaymentService{
		gateway:   gateway,
		stayflexi: sf,
		now:       time.Now,
		randIntn:  rand.Intn,
	}
}

// CreateOrder creates a gateway order for a major-unit amount.
func (ps *PaymentService) CreateOrder(ctx context.Context, req *models.RazorpayOrderRequest) (*models.RazorpayOrderResponse, error) {
	if !ps.gateway.HasCredentials() {
		return nil, ErrMissingGatewayCredentials
	}

	payload, err := BuildOrderPayload(req, ps.now(), ps.randIntn)
	if err != nil {
		return nil, err
	}

	log.Printf("Creating order: amount %d %s, receipt %s", payload.Amount, payload.Currency, payload.Receipt)

	order, err := ps.gateway.CreateOrder(ctx, payload)
	if err != nil {
		log.Printf("Order creation failed for receipt %s: %v", payload.Receipt, err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &models.RazorpayOrderResponse{
		Success: true,
		Order:   *order,
		KeyID:   ps.gateway.KeyID(),
	}, nil
}

// ConfirmPayment verifies the checkout signature and records the payment
// against the booking. Nothing is recorded unless the signature matches.
func (ps *PaymentService) ConfirmPayment(ctx context.Context, req *models.PaymentConfirmation) (*models.PaymentConfirmationResponse, error) {
	if err := ValidatePaymentConfirmation(req); err != nil {
		return nil, err
	}
	ps.transition(models.StateReceived, req)

	if !ps.gateway.HasSecret() {
		return nil, ErrMissingGatewayCredentials
	}
	if !ps.gateway.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		ps.transition(models.StateSignatureInvalid, req)
		return nil, ErrInvalidSignature
	}
	ps.transition(models.StateSignatureChecked, req)

	result, err := ps.stayflexi.RecordExternalPayment(ctx, BuildExternalPaymentRecord(req))
	if err != nil {
		ps.transition(models.StateRecordingFailed, req)
		log.Printf("Payment %s not recorded for booking %s: %v", req.RazorpayPaymentID, req.BookingID, err)
		return nil, &RecordingFailedError{Err: err}
	}
	ps.transition(models.StatePaymentRecorded, req)

	ps.transition(models.StateConfirmed, req)
	return &models.PaymentConfirmationResponse{
		Success:       true,
		Message:       "Payment confirmed and booking completed",
		BookingID:     req.BookingID,
		PaymentID:     req.RazorpayPaymentID,
		PaymentResult: result,
	}, nil
}

func (ps *PaymentService) transition(state models.ConfirmationState, req *models.PaymentConfirmation) {
	log.Printf("Payment confirmation %s: booking %s, order %s, payment %s", state, req.BookingID, req.RazorpayOrderID, req.RazorpayPaymentID)
}
