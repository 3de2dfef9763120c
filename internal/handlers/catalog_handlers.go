package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"hotel_booking_edge/internal/services"

	"github.com/julienschmidt/httprouter"
)

// CatalogHandlers handles the read-only hotel routes
type CatalogHandlers struct {
	catalogService *services.CatalogService
}

// NewCatalogHandlers creates new catalog handlers
func NewCatalogHandlers(catalogService *services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{
		catalogService: catalogService,
	}
}

type fetchFunc func(ctx context.Context) (json.RawMessage, error)

// relay runs fetch and writes the upstream body unchanged. Missing input is
// a 400 with missingMsg; any other failure is logged and answered with a 500
// carrying failMsg.
func relay(w http.ResponseWriter, r *http.Request, missingMsg, failMsg string, fetch fetchFunc) {
	body, err := fetch(r.Context())
	if err != nil {
		var missing *services.MissingFieldError
		if errors.As(err, &missing) {
			respondJSON(w, http.StatusBadRequest, M{"success": false, "error": missingMsg})
			return
		}
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		respondJSON(w, http.StatusInternalServerError, M{"success": false, "error": failMsg})
		return
	}
	respondRaw(w, http.StatusOK, body)
}

// Availability handles GET /api/availability
func (ch *CatalogHandlers) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	relay(w, r, "hotelId, checkin, and checkout are required", "Failed to fetch hotel availability", func(ctx context.Context) (json.RawMessage, error) {
		return ch.catalogService.Availability(ctx, q.Get("hotelId"), q.Get("checkin"), q.Get("checkout"))
	})
}

// Calendar handles GET /api/calendar
func (ch *CatalogHandlers) Calendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	relay(w, r, "hotelId, fromDate, and toDate are required", "Failed to fetch hotel calendar", func(ctx context.Context) (json.RawMessage, error) {
		return ch.catalogService.Calendar(ctx, q.Get("hotelId"), q.Get("fromDate"), q.Get("toDate"))
	})
}

// CancelBooking handles GET /api/cancel-booking/:bookingId
func (ch *CatalogHandlers) CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	relay(w, r, "Booking ID is required", "Failed to cancel booking", func(ctx context.Context) (json.RawMessage, error) {
		return ch.catalogService.CancellationPolicy(ctx, ps.ByName("bookingId"))
	})
}

// CheckinTimes handles GET /api/checkin-times/:hotelId
func (ch *CatalogHandlers) CheckinTimes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	relay(w, r, "Hotel ID is required", "Failed to fetch check-in times", func(ctx context.Context) (json.RawMessage, error) {
		return ch.catalogService.CheckinTimes(ctx, ps.ByName("hotelId"))
	})
}

// CheckoutTimes handles GET /api/checkout-times/:hotelId
func (ch *CatalogHandlers) CheckoutTimes(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	relay(w, r, "Hotel ID is required", "Failed to fetch checkout times", func(ctx context.Context) (json.RawMessage, error) {
		return ch.catalogService.CheckoutTimes(ctx, ps.ByName("hotelId"))
	})
}

// HotelContent handles GET /api/hotel-content/:id
func (ch *CatalogHandlers) HotelContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	relay(w, r, "Hotel ID is required", "Failed to fetch hotel content", func(ctx context.Context) (json.RawMessage, error) {
		return ch.catalogService.HotelContent(ctx, ps.ByName("id"))
	})
}

// Hotels handles GET /api/hotels
func (ch *CatalogHandlers) Hotels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	relay(w, r, "", "Failed to fetch hotels", ch.catalogService.Hotels)
}

// HotelsByLocation handles GET /api/hotels-by-location?location=
func (ch *CatalogHandlers) HotelsByLocation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	location := r.URL.Query().Get("location")
	relay(w, r, "Location is required", "Failed to fetch hotels by location", func(ctx context.Context) (json.RawMessage, error) {
		return ch.catalogService.HotelsByLocation(ctx, location)
	})
}

// Locations handles GET /api/locations and GET /api/hotels-by-locations
func (ch *CatalogHandlers) Locations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	relay(w, r, "", "Failed to fetch locations", ch.catalogService.Locations)
}
