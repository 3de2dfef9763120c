package services

import (
	"errors"
	"fmt"
	"strconv"

	"hotel_booking_edge/internal/models"
	"hotel_booking_edge/internal/upstream"
)

// Caller input and configuration errors.
var (
	ErrNoRoomInfo                = errors.New("no room information provided")
	ErrInvalidSignature          = errors.New("invalid payment signature")
	ErrMissingGatewayCredentials = errors.New("missing razorpay credentials")
)

// MissingFieldError names the first required field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// InvalidFieldError is a present field with an unusable value. Message is
// safe to show to the caller.
type InvalidFieldError struct {
	Field   string
	Message string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Message)
}

// InvalidRoomError is a rooms[] entry without a room type or rate plan.
// Index is 1-based.
type InvalidRoomError struct {
	Index int
	Room  models.RoomSelection
}

func (e *InvalidRoomError) Error() string {
	return fmt.Sprintf("room %d is missing roomTypeId or ratePlanId", e.Index)
}

// RecordingFailedError means the signature was valid but the payment could
// not be recorded against the booking. The booking stays live upstream.
type RecordingFailedError struct {
	Err error
}

func (e *RecordingFailedError) Error() string {
	return "payment recording failed: " + e.Reason()
}

func (e *RecordingFailedError) Unwrap() error {
	return e.Err
}

// Reason is the upstream status code when there was one, otherwise the cause.
func (e *RecordingFailedError) Reason() string {
	var ue *upstream.UnavailableError
	if errors.As(e.Err, &ue) && ue.HasStatus() {
		return strconv.Itoa(ue.StatusCode)
	}
	return upstream.Cause(e.Err)
}
