// Package routes builds the router that mounts every handler under the
// configured base path.
package routes

import (
	"net/http"

	"hotel_booking_edge/internal/handlers"

	"github.com/julienschmidt/httprouter"
)

// NewRouter builds the full route table. basePath may be empty.
func NewRouter(basePath string, catalog *handlers.CatalogHandlers, bookings *handlers.BookingHandlers, payments *handlers.PaymentHandlers) *httprouter.Router {
	router := httprouter.New()
	router.HandleOPTIONS = true
	router.HandleMethodNotAllowed = true
	router.GlobalOPTIONS = http.HandlerFunc(handlers.Preflight)
	router.NotFound = http.HandlerFunc(handlers.NotFound)
	router.MethodNotAllowed = http.HandlerFunc(handlers.MethodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/health", handlers.Health)

	api := basePath + "/api"
	AddCatalogRoutes(router, api, catalog)
	AddBookingRoutes(router, api, bookings)
	AddPaymentRoutes(router, api, payments)

	return router
}

// AddCatalogRoutes mounts the read-only hotel routes.
func AddCatalogRoutes(router *httprouter.Router, api string, ch *handlers.CatalogHandlers) {
	router.GET(api+"/availability", ch.Availability)
	router.GET(api+"/calendar", ch.Calendar)
	router.GET(api+"/calender", ch.Calendar)
	router.GET(api+"/cancel-booking/:bookingId", ch.CancelBooking)
	router.GET(api+"/checkin-times/:hotelId", ch.CheckinTimes)
	router.GET(api+"/checkout-times/:hotelId", ch.CheckoutTimes)
	router.GET(api+"/hotel-content/:id", ch.HotelContent)
	router.GET(api+"/hotels", ch.Hotels)
	router.GET(api+"/hotels-by-location", ch.HotelsByLocation)
	router.GET(api+"/hotels-by-locations", ch.Locations)
	router.GET(api+"/locations", ch.Locations)
}

// AddBookingRoutes mounts booking creation.
func AddBookingRoutes(router *httprouter.Router, api string, bh *handlers.BookingHandlers) {
	router.POST(api+"/create-booking", bh.CreateBooking)
}

// AddPaymentRoutes mounts order creation and payment confirmation.
func AddPaymentRoutes(router *httprouter.Router, api string, ph *handlers.PaymentHandlers) {
	router.POST(api+"/create-razorpay-order", ph.CreateRazorpayOrder)
	router.POST(api+"/confirm-payment", ph.ConfirmPayment)
}
