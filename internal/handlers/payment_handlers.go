package handlers

import (
	"errors"
	"log"
	"net/http"

	"hotel_booking_edge/internal/models"
	"hotel_booking_edge/internal/services"
	"hotel_booking_edge/internal/upstream"

	"github.com/julienschmidt/httprouter"
)

// PaymentHandlers handles payment-related HTTP requests
type PaymentHandlers struct {
	paymentService *services.PaymentService
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(paymentService *services.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{
		paymentService: paymentService,
	}
}

// CreateRazorpayOrder handles POST /api/create-razorpay-order
func (ph *PaymentHandlers) CreateRazorpayOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.RazorpayOrderRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, M{"success": false, "error": "Invalid request body"})
		return
	}

	response, err := ph.paymentService.CreateOrder(r.Context(), &req)
	if err != nil {
		status, body := orderFailure(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Order creation error: %v", err)
		}
		respondJSON(w, status, body)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// ConfirmPayment handles POST /api/confirm-payment
func (ph *PaymentHandlers) ConfirmPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.PaymentConfirmation
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, M{"success": false, "message": "Invalid request body"})
		return
	}

	response, err := ph.paymentService.ConfirmPayment(r.Context(), &req)
	if err != nil {
		status, body := confirmationFailure(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Payment confirmation error: %v", err)
		}
		respondJSON(w, status, body)
		return
	}

	respondJSON(w, http.StatusOK, response)
	log.Printf("Payment confirmation completed: booking=%s, payment=%s", response.BookingID, response.PaymentID)
}

func orderFailure(err error) (int, M) {
	var (
		invalid     *services.InvalidFieldError
		unavailable *upstream.UnavailableError
		classified  *upstream.ClassificationError
	)

	switch {
	case errors.Is(err, services.ErrMissingGatewayCredentials):
		return http.StatusInternalServerError, M{"success": false, "error": "Missing Razorpay credentials"}
	case errors.As(err, &invalid):
		return http.StatusBadRequest, M{"success": false, "error": invalid.Message}
	case errors.As(err, &unavailable) && unavailable.HasStatus():
		return unavailable.StatusCode, M{"success": false, "error": "Razorpay API error: " + unavailable.Body}
	case errors.As(err, &classified):
		return http.StatusInternalServerError, M{"success": false, "error": classified.Message()}
	default:
		return http.StatusInternalServerError, M{"success": false, "error": "Server error: " + upstream.Cause(err)}
	}
}

func confirmationFailure(err error) (int, M) {
	var (
		missing   *services.MissingFieldError
		recording *services.RecordingFailedError
	)

	switch {
	case errors.As(err, &missing):
		return http.StatusBadRequest, M{"success": false, "message": "Missing required payment data", "field": missing.Field}
	case errors.Is(err, services.ErrInvalidSignature):
		return http.StatusBadRequest, M{"success": false, "message": "Invalid payment signature"}
	case errors.Is(err, services.ErrMissingGatewayCredentials):
		return http.StatusInternalServerError, M{"success": false, "message": "Payment confirmation failed", "error": "Missing Razorpay credentials"}
	case errors.As(err, &recording):
		return http.StatusInternalServerError, M{"success": false, "message": "Payment confirmation failed", "error": "Payment recording failed: " + recording.Reason()}
	default:
		return http.StatusInternalServerError, M{"success": false, "message": "Payment confirmation failed", "error": upstream.Cause(err)}
	}
}
