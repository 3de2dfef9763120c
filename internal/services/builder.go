package services

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"hotel_booking_edge/internal/models"
)

// Gateway limit on receipt length.
const maxReceiptLength = 40

// ValidateBookingRequest checks required fields in order and returns the
// normalized room stays.
func ValidateBookingRequest(req *models.BookingRequest) ([]models.RoomStay, error) {
	switch {
	case req.HotelID == "":
		return nil, &MissingFieldError{Field: "hotelId"}
	case req.Checkin == "":
		return nil, &MissingFieldError{Field: "checkin"}
	case req.Checkout == "":
		return nil, &MissingFieldError{Field: "checkout"}
	case len(req.CustomerDetails) == 0:
		return nil, &MissingFieldError{Field: "customerDetails"}
	case req.Amount == 0:
		return nil, &MissingFieldError{Field: "amount"}
	case req.Amount < 0:
		return nil, &InvalidFieldError{Field: "amount", Message: "Amount must be greater than 0"}
	}

	return BuildRoomStays(req)
}

// BuildRoomStays prefers the rooms array and falls back to the single-room
// shorthand. Every room in the array must name a room type and rate plan.
func BuildRoomStays(req *models.BookingRequest) ([]models.RoomStay, error) {
	if len(req.Rooms) > 0 {
		for i, room := range req.Rooms {
			if room.RoomTypeID == "" || room.RatePlanID == "" {
				return nil, &InvalidRoomError{Index: i + 1, Room: room}
			}
		}

		stays := make([]models.RoomStay, 0, len(req.Rooms))
		for _, room := range req.Rooms {
			stays = append(stays, newRoomStay(room.RoomTypeID, room.RatePlanID, room.Adults, room.Children))
		}
		return stays, nil
	}

	if req.RoomTypeID != "" && req.RatePlanID != "" {
		return []models.RoomStay{newRoomStay(req.RoomTypeID, req.RatePlanID, req.Adults, req.Children)}, nil
	}

	return nil, ErrNoRoomInfo
}

func newRoomStay(roomTypeID, ratePlanID models.ID, adults, children int) models.RoomStay {
	if adults <= 0 {
		adults = 1
	}
	if children < 0 {
		children = 0
	}
	return models.RoomStay{
		NumAdults:    adults,
		NumChildren:  children,
		NumChildren1: 0,
		RoomTypeID:   roomTypeID,
		RatePlanID:   ratePlanID,
	}
}

// BuildBookingPayload maps a validated request onto the perform-booking
// schema. The online flow creates an enquiry (a time-limited hold) that the
// confirmed payment later completes.
func BuildBookingPayload(req *models.BookingRequest, stays []models.RoomStay) *models.BookingPayload {
	return &models.BookingPayload{
		Checkin:         req.Checkin,
		Checkout:        req.Checkout,
		HotelID:         req.HotelID,
		BookingStatus:   models.BookingStatusConfirmed,
		BookingSource:   models.BookingSourceOD,
		RoomStays:       stays,
		CtaID:           "",
		CustomerDetails: req.CustomerDetails,
		PaymentDetails: models.PaymentDetails{
			SellRate:   req.Amount,
			RoomRate:   req.Amount,
			PayAtHotel: req.PayAtHotel,
		},
		PromoInfo:            map[string]interface{}{},
		SpecialRequests:      req.SpecialRequests,
		RequestToBook:        false,
		IsAddOnPresent:       true,
		PosOrderList:         []interface{}{},
		IsInsured:            false,
		RefundableBookingFee: 0,
		AppliedPromocode:     "",
		PromoAmount:          0,
		BookingFees:          0,
		IsEnquiry:            !req.PayAtHotel,
		IsExternalPayment:    false,
	}
}

// ToMinorUnits converts a major-unit amount to minor units, rounding to the
// nearest integer (100.5 -> 10050).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// GenerateReceipt returns rcpt_<last 8 digits of unix millis>_<n>.
func GenerateReceipt(now time.Time, n int) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("rcpt_%s_%d", millis, n)
}

// BuildOrderPayload validates an order request and converts it for the
// gateway. randIntn supplies the receipt suffix when none was given.
func BuildOrderPayload(req *models.RazorpayOrderRequest, now time.Time, randIntn func(int) int) (*models.RazorpayOrderPayload, error) {
	amount, ok := req.Amount.(float64)
	if !ok || amount == 0 {
		return nil, &InvalidFieldError{Field: "amount", Message: "Invalid or missing amount"}
	}
	if amount < 0 {
		return nil, &InvalidFieldError{Field: "amount", Message: "Amount must be greater than 0"}
	}
	if len(req.Receipt) > maxReceiptLength {
		return nil, &InvalidFieldError{Field: "receipt", Message: fmt.Sprintf("Receipt must be at most %d characters", maxReceiptLength)}
	}

	currency := req.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	receipt := req.Receipt
	if receipt == "" {
		receipt = GenerateReceipt(now, randIntn(1000))
	}

	return &models.RazorpayOrderPayload{
		Amount:   ToMinorUnits(amount),
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

// ValidatePaymentConfirmation checks the fields the checkout callback must
// carry.
func ValidatePaymentConfirmation(req *models.PaymentConfirmation) error {
	switch {
	case req.RazorpayPaymentID == "":
		return &MissingFieldError{Field: "razorpay_payment_id"}
	case req.RazorpayOrderID == "":
		return &MissingFieldError{Field: "razorpay_order_id"}
	case req.RazorpaySignature == "":
		return &MissingFieldError{Field: "razorpay_signature"}
	case req.BookingID == "":
		return &MissingFieldError{Field: "bookingId"}
	}
	return nil
}

// BuildExternalPaymentRecord maps a verified confirmation onto the
// recordExternalPayment schema.
func BuildExternalPaymentRecord(req *models.PaymentConfirmation) *models.ExternalPaymentRecord {
	currency := req.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	return &models.ExternalPaymentRecord{
		HotelID:                         req.HotelID,
		BookingID:                       req.BookingID,
		BookingSource:                   models.PaymentBookingSource,
		ModuleSource:                    models.PaymentModuleSource,
		Amount:                          req.Amount,
		Currency:                        currency,
		PaymentGatewayID:                req.RazorpayPaymentID,
		PGName:                          models.PaymentGatewayName,
		RequiresPostPaymentConfirmation: "true",
		Notes:                           fmt.Sprintf("Payment ID: %s, Order ID: %s", req.RazorpayPaymentID, req.RazorpayOrderID),
		GatewayMessage:                  "",
		PaymentType:                     models.PaymentTypeCreditCard,
		PaymentIssuer:                   models.PaymentGatewayName,
		PaymentMode:                     models.PaymentModeOnline,
		Status:                          models.PaymentStatusSuccess,
	}
}
