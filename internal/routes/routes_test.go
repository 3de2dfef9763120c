package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"hotel_booking_edge/internal/handlers"
	"hotel_booking_edge/internal/middleware"
	"hotel_booking_edge/internal/razorpay"
	"hotel_booking_edge/internal/services"
	"hotel_booking_edge/internal/stayflexi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "rzp_secret"

type edge struct {
	handler        http.Handler
	orderBody      atomic.Value
	recordCalls    int32
	bookingCalls   int32
	gatewayStatus  int
	stayflexiCalls int32
}

func newEdge(t *testing.T) *edge {
	t.Helper()
	e := &edge{gatewayStatus: http.StatusOK}

	sf := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&e.stayflexiCalls, 1)
		switch r.URL.Path {
		case "/core/api/v1/beservice/perform-booking":
			atomic.AddInt32(&e.bookingCalls, 1)
			io.WriteString(w, `{"status":true,"bookingId":"SFBOOKING_24317_9"}`)
		case "/api/v2/payments/recordExternalPayment/":
			atomic.AddInt32(&e.recordCalls, 1)
			io.WriteString(w, `{"status":"ok"}`)
		case "/core/api/v1/beservice/grouphotels":
			io.WriteString(w, `[{"hotelId":"24317","name":"Sea View"}]`)
		case "/core/api/v1/beservice/hotelcalendar/":
			io.WriteString(w, `{"days":[]}`)
		case "/core/api/v1/beservice/hotelcontent":
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `<html>error</html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(sf.Close)

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		e.orderBody.Store(string(body))
		if e.gatewayStatus != http.StatusOK {
			w.WriteHeader(e.gatewayStatus)
			io.WriteString(w, `{"error":{"description":"Authentication failed"}}`)
			return
		}
		io.WriteString(w, `{"id":"order_E2E","amount":50000,"currency":"INR","receipt":"rcpt_1","status":"created"}`)
	}))
	t.Cleanup(gateway.Close)

	sfClient := stayflexi.NewClient(sf.URL, "sf-key", "24316", 5*time.Second)
	rzClient := razorpay.NewClient(gateway.URL, "rzp_test_key", secret, 5*time.Second)

	router := NewRouter("/backend",
		handlers.NewCatalogHandlers(services.NewCatalogService(sfClient, nil, time.Minute)),
		handlers.NewBookingHandlers(services.NewBookingService(sfClient)),
		handlers.NewPaymentHandlers(services.NewPaymentService(rzClient, sfClient)),
	)
	e.handler = middleware.Chain(router, middleware.RequestID, middleware.Logging, middleware.SecurityHeaders, middleware.CORS([]string{"*"}))
	return e
}

func (e *edge) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Origin", "https://hotel.example")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"booking-edge"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestPreflight(t *testing.T) {
	e := newEdge(t)

	req := httptest.NewRequest(http.MethodOptions, "/backend/api/confirm-payment", nil)
	req.Header.Set("Origin", "https://hotel.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestPlainOptions(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodOptions, "/backend/api/hotels", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodGet, "/backend/api/confirm-payment", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Method not allowed"}`, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Allow"), http.MethodPost)
}

func TestNotFound(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodGet, "/backend/api/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHotelsRelayedUnchanged(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodGet, "/backend/api/hotels", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `[{"hotelId":"24317","name":"Sea View"}]`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestCalendarAlias(t *testing.T) {
	e := newEdge(t)

	for _, path := range []string{"/backend/api/calendar", "/backend/api/calender"} {
		rec := e.do(http.MethodGet, path+"?hotelId=24317&fromDate=2026-10-01&toDate=2026-10-31", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"days":[]}`, rec.Body.String())
	}
}

func TestReadRouteMissingParams(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodGet, "/backend/api/availability?hotelId=24317", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"hotelId, checkin, and checkout are required"}`, rec.Body.String())
	assert.Equal(t, int32(0), atomic.LoadInt32(&e.stayflexiCalls))
}

func TestReadRouteUpstreamFailureIsGeneric(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodGet, "/backend/api/hotel-content/24317", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Failed to fetch hotel content"}`, rec.Body.String())
}

func TestCreateBooking(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodPost, "/backend/api/create-booking", `{
		"hotelId": 24317,
		"checkin": "20-10-2026 12:00:00",
		"checkout": "21-10-2026 11:00:00",
		"customerDetails": {"firstName": "Asha"},
		"amount": 4200,
		"rooms": [{"roomTypeId": 101, "ratePlanId": "7", "adults": 2}]
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "SFBOOKING_24317_9", body["bookingId"])
	assert.Equal(t, "24317", body["hotelId"])
	assert.Equal(t, 1.0, body["roomCount"])
}

func TestCreateBooking_InvalidRoomNoUpstreamCall(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodPost, "/backend/api/create-booking", `{
		"hotelId": "24317",
		"checkin": "a", "checkout": "b",
		"customerDetails": {"firstName": "Asha"},
		"amount": 4200,
		"rooms": [{"roomTypeId": "101", "ratePlanId": "7"}, {"roomTypeId": "102"}]
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Room 2 is missing roomTypeId or ratePlanId", body["message"])
	assert.Equal(t, int32(0), atomic.LoadInt32(&e.bookingCalls))
}

func TestCreateBooking_MissingData(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodPost, "/backend/api/create-booking", `{"hotelId":"24317"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Missing required booking data.","field":"checkin"}`, rec.Body.String())
}

func TestCreateRazorpayOrder(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodPost, "/backend/api/create-razorpay-order", `{"amount": 500}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "rzp_test_key", body["keyId"])
	order := body["order"].(map[string]interface{})
	assert.Equal(t, "order_E2E", order["id"])
	assert.Equal(t, 50000.0, order["amount"])
	assert.Equal(t, "INR", order["currency"])

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(e.orderBody.Load().(string)), &sent))
	assert.Equal(t, 50000.0, sent["amount"])
	assert.Equal(t, "INR", sent["currency"])
	assert.Regexp(t, `^rcpt_\d{8}_\d{1,3}$`, sent["receipt"])
}

func TestCreateRazorpayOrder_GatewayUnauthorized(t *testing.T) {
	e := newEdge(t)
	e.gatewayStatus = http.StatusUnauthorized

	rec := e.do(http.MethodPost, "/backend/api/create-razorpay-order", `{"amount": 500}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "Razorpay API error: ")
}

func TestCreateRazorpayOrder_InvalidAmount(t *testing.T) {
	e := newEdge(t)

	rec := e.do(http.MethodPost, "/backend/api/create-razorpay-order", `{"amount": "lots"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid or missing amount"}`, rec.Body.String())
}

func TestConfirmPayment(t *testing.T) {
	e := newEdge(t)
	sig := razorpay.Signature("order_E2E", "pay_E2E", secret)

	rec := e.do(http.MethodPost, "/backend/api/confirm-payment", `{
		"razorpay_payment_id": "pay_E2E",
		"razorpay_order_id": "order_E2E",
		"razorpay_signature": "`+sig+`",
		"bookingId": "SFBOOKING_24317_9",
		"hotelId": "24317",
		"amount": 500
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "SFBOOKING_24317_9", body["bookingId"])
	assert.Equal(t, "pay_E2E", body["paymentId"])
	assert.Equal(t, map[string]interface{}{"status": "ok"}, body["paymentResult"])
	assert.Equal(t, int32(1), atomic.LoadInt32(&e.recordCalls))
}

func TestConfirmPayment_TamperedSignature(t *testing.T) {
	e := newEdge(t)
	sig := []byte(razorpay.Signature("order_E2E", "pay_E2E", secret))
	if sig[0] == 'a' {
		sig[0] = 'b'
	} else {
		sig[0] = 'a'
	}

	rec := e.do(http.MethodPost, "/backend/api/confirm-payment", `{
		"razorpay_payment_id": "pay_E2E",
		"razorpay_order_id": "order_E2E",
		"razorpay_signature": "`+string(sig)+`",
		"bookingId": "SFBOOKING_24317_9"
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid payment signature"}`, rec.Body.String())
	assert.Equal(t, int32(0), atomic.LoadInt32(&e.recordCalls))
}
