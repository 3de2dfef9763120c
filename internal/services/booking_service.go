package services

import (
	"context"
	"fmt"
	"log"

	"hotel_booking_edge/internal/models"
	"hotel_booking_edge/internal/stayflexi"
)

// BookingService creates enquiry bookings on the property-management system
type BookingService struct {
	stayflexi *stayflexi.Client
}

// NewBookingService creates a new booking service
func NewBookingService(sf *stayflexi.Client) *BookingService {
	return &BookingService{
		stayflexi: sf,
	}
}

// CreateBooking validates the request, builds the perform-booking payload and
// submits it. Validation failures never reach the upstream.
func (bs *BookingService) CreateBooking(ctx context.Context, req *models.BookingRequest) (*models.BookingResponse, error) {
	// Step 1: Validate and normalize rooms
	stays, err := ValidateBookingRequest(req)
	if err != nil {
		return nil, err
	}

	log.Printf("Creating booking for hotel %s, %s to %s, rooms %d", req.HotelID, req.Checkin, req.Checkout, len(stays))

	// Step 2: Submit the enquiry
	payload := BuildBookingPayload(req, stays)
	bookingID, err := bs.stayflexi.PerformBooking(ctx, payload)
	if err != nil {
		log.Printf("Booking failed for hotel %s: %v", req.HotelID, err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Printf("Booking %s created for hotel %s", bookingID, req.HotelID)

	message := "Booking created successfully"
	if payload.IsEnquiry {
		message = "Enquiry booking created successfully"
	}

	return &models.BookingResponse{
		Success:   true,
		BookingID: bookingID,
		HotelID:   req.HotelID,
		RoomCount: len(stays),
		Amount:    req.Amount,
		Message:   message,
	}, nil
}
