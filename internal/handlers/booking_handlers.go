package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"hotel_booking_edge/internal/models"
	"hotel_booking_edge/internal/services"
	"hotel_booking_edge/internal/upstream"

	"github.com/julienschmidt/httprouter"
)

// BookingHandlers handles booking-related HTTP requests
type BookingHandlers struct {
	bookingService *services.BookingService
}

// NewBookingHandlers creates new booking handlers
func NewBookingHandlers(bookingService *services.BookingService) *BookingHandlers {
	return &BookingHandlers{
		bookingService: bookingService,
	}
}

// CreateBooking handles POST /api/create-booking
func (bh *BookingHandlers) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req models.BookingRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, M{"success": false, "message": "Invalid request body", "error": err.Error()})
		return
	}

	response, err := bh.bookingService.CreateBooking(r.Context(), &req)
	if err != nil {
		status, body := bookingFailure(err)
		if status >= http.StatusInternalServerError {
			log.Printf("Booking creation error: %v", err)
		}
		respondJSON(w, status, body)
		return
	}

	respondJSON(w, http.StatusOK, response)
	log.Printf("Booking creation completed: ID=%s, Rooms=%d", response.BookingID, response.RoomCount)
}

// bookingFailure maps a create-booking error to a status and envelope.
func bookingFailure(err error) (int, M) {
	var (
		missing     *services.MissingFieldError
		invalid     *services.InvalidFieldError
		badRoom     *services.InvalidRoomError
		classified  *upstream.ClassificationError
		business    *upstream.BusinessError
		unavailable *upstream.UnavailableError
	)

	switch {
	case errors.As(err, &missing):
		return http.StatusBadRequest, M{"success": false, "message": "Missing required booking data.", "field": missing.Field}
	case errors.As(err, &invalid):
		return http.StatusBadRequest, M{"success": false, "message": invalid.Message, "field": invalid.Field}
	case errors.As(err, &badRoom):
		return http.StatusBadRequest, M{
			"success":  false,
			"message":  fmt.Sprintf("Room %d is missing roomTypeId or ratePlanId", badRoom.Index),
			"roomData": badRoom.Room,
		}
	case errors.Is(err, services.ErrNoRoomInfo):
		return http.StatusBadRequest, M{"success": false, "message": "No room information provided"}
	case errors.As(err, &classified):
		body := M{"success": false, "message": classified.Message()}
		if errors.Is(err, upstream.ErrMalformedJSON) {
			body["rawResponse"] = classified.Body
		}
		return http.StatusInternalServerError, body
	case errors.As(err, &business):
		return http.StatusBadRequest, M{"success": false, "message": business.Message, "fullResponse": business.Response}
	case errors.As(err, &unavailable) && unavailable.HasStatus():
		return unavailable.StatusCode, M{
			"success": false,
			"message": fmt.Sprintf("API Error %d: %s", unavailable.StatusCode, unavailable.Body),
		}
	default:
		return http.StatusInternalServerError, M{"success": false, "message": "Server error", "error": upstream.Cause(err)}
	}
}
