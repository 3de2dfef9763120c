package models

import (
	"encoding/json"
	"fmt"
)

// ID is an upstream identifier the frontend may send as a JSON string or number.
// It is always forwarded as a string.
type ID string

// UnmarshalJSON accepts "123", 123 and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// RoomSelection is one room as the frontend sends it.
type RoomSelection struct {
	RoomTypeID ID  `json:"roomTypeId"`
	RatePlanID ID  `json:"ratePlanId"`
	Adults     int `json:"adults"`
	Children   int `json:"children"`
}

// BookingRequest is the create-booking body. Rooms takes precedence over the
// single-room shorthand fields.
type BookingRequest struct {
	HotelID         ID                     `json:"hotelId"`
	Checkin         string                 `json:"checkin"`
	Checkout        string                 `json:"checkout"`
	CustomerDetails map[string]interface{} `json:"customerDetails"`
	Amount          float64                `json:"amount"`
	Rooms           []RoomSelection        `json:"rooms"`
	RoomTypeID      ID                     `json:"roomTypeId"`
	RatePlanID      ID                     `json:"ratePlanId"`
	Adults          int                    `json:"adults"`
	Children        int                    `json:"children"`
	SpecialRequests string                 `json:"specialRequests"`
	PayAtHotel      bool                   `json:"payAtHotel"`
}

// RoomStay is a normalized room entry in the upstream booking schema.
// NumChildren1 is reserved by the upstream and always zero.
type RoomStay struct {
	NumAdults    int `json:"numAdults"`
	NumChildren  int `json:"numChildren"`
	NumChildren1 int `json:"numChildren1"`
	RoomTypeID   ID  `json:"roomTypeId"`
	RatePlanID   ID  `json:"ratePlanId"`
}

// PaymentDetails is the pricing block of the upstream booking payload.
type PaymentDetails struct {
	SellRate   float64 `json:"sellRate"`
	RoomRate   float64 `json:"roomRate"`
	PayAtHotel bool    `json:"payAtHotel"`
}

// BookingPayload is the perform-booking request body.
type BookingPayload struct {
	Checkin              string                 `json:"checkin"`
	Checkout             string                 `json:"checkout"`
	HotelID              ID                     `json:"hotelId"`
	BookingStatus        string                 `json:"bookingStatus"`
	BookingSource        string                 `json:"bookingSource"`
	RoomStays            []RoomStay             `json:"roomStays"`
	CtaID                string                 `json:"ctaId"`
	CustomerDetails      map[string]interface{} `json:"customerDetails"`
	PaymentDetails       PaymentDetails         `json:"paymentDetails"`
	PromoInfo            map[string]interface{} `json:"promoInfo"`
	SpecialRequests      string                 `json:"specialRequests"`
	RequestToBook        bool                   `json:"requestToBook"`
	IsAddOnPresent       bool                   `json:"isAddOnPresent"`
	PosOrderList         []interface{}          `json:"posOrderList"`
	IsInsured            bool                   `json:"isInsured"`
	RefundableBookingFee float64                `json:"refundableBookingFee"`
	AppliedPromocode     string                 `json:"appliedPromocode"`
	PromoAmount          float64                `json:"promoAmount"`
	BookingFees          float64                `json:"bookingFees"`
	IsEnquiry            bool                   `json:"isEnquiry"`
	IsExternalPayment    bool                   `json:"isExternalPayment"`
}

// Booking payload constants
const (
	BookingStatusConfirmed = "CONFIRMED"
	BookingSourceOD        = "STAYFLEXI_OD"
)

// BookingResponse is returned to the caller after a successful perform-booking.
type BookingResponse struct {
	Success   bool    `json:"success"`
	BookingID ID      `json:"bookingId"`
	HotelID   ID      `json:"hotelId"`
	RoomCount int     `json:"roomCount"`
	Amount    float64 `json:"amount"`
	Message   string  `json:"message,omitempty"`
}
