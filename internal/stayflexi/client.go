// Package stayflexi is a client for the Stayflexi property-management API.
package stayflexi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"hotel_booking_edge/internal/models"
	"hotel_booking_edge/internal/upstream"
)

// Source names this upstream in errors and caller-facing messages.
const Source = "Stayflexi"

const (
	beservicePath     = "/core/api/v1/beservice"
	recordPaymentPath = "/api/v2/payments/recordExternalPayment/"
	apiKeyHeader      = "X-SF-API-KEY"
)

// Client calls Stayflexi endpoints. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	groupID    string
	httpClient *http.Client
}

// NewClient creates a new Stayflexi client
func NewClient(baseURL, apiKey, groupID string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		groupID: groupID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// HotelDetailAdvanced returns rooms and rates for a stay.
func (c *Client) HotelDetailAdvanced(ctx context.Context, hotelID, checkin, checkout string) (json.RawMessage, error) {
	return c.getJSON(ctx, beservicePath+"/hoteldetailadvanced", url.Values{
		"hotelId":  {hotelID},
		"checkin":  {checkin},
		"checkout": {checkout},
		"discount": {"0"},
	})
}

// HotelCalendar returns per-day availability between two dates.
func (c *Client) HotelCalendar(ctx context.Context, hotelID, fromDate, toDate string) (json.RawMessage, error) {
	return c.getJSON(ctx, beservicePath+"/hotelcalendar/", url.Values{
		"hotelId":  {hotelID},
		"fromDate": {fromDate},
		"toDate":   {toDate},
	})
}

// BookingCancellation cancels a booking.
func (c *Client) BookingCancellation(ctx context.Context, bookingID string) (json.RawMessage, error) {
	return c.getJSON(ctx, beservicePath+"/bookingcancellation", url.Values{
		"bookingId": {bookingID},
	})
}

// HotelCheckin returns check-in times for the given date (YYYY-MM-DD).
func (c *Client) HotelCheckin(ctx context.Context, hotelID, date string) (json.RawMessage, error) {
	return c.getJSON(ctx, beservicePath+"/hotelcheckin/", url.Values{
		"hotelId": {hotelID},
		"date":    {date},
	})
}

// HotelCheckout returns check-out times for the given date (YYYY-MM-DD).
func (c *Client) HotelCheckout(ctx context.Context, hotelID, date string) (json.RawMessage, error) {
	return c.getJSON(ctx, beservicePath+"/hotelcheckout/", url.Values{
		"hotelId": {hotelID},
		"date":    {date},
	})
}

// HotelContent returns descriptive content for one hotel.
func (c *Client) HotelContent(ctx context.Context, hotelID string) (json.RawMessage, error) {
	return c.getJSON(ctx, beservicePath+"/hotelcontent", url.Values{
		"hotelId": {hotelID},
	})
}

// GroupHotels lists the hotels of the configured group.
func (c *Client) GroupHotels(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, beservicePath+"/grouphotels", url.Values{
		"groupId": {c.groupID},
	})
}

// GroupHotelsByLocation lists the group's hotels in one location.
func (c *Client) GroupHotelsByLocation(ctx context.Context, location string) (json.RawMessage, error) {
	return c.getJSON(ctx, beservicePath+"/grouphotelsbylocation", url.Values{
		"groupId":  {c.groupID},
		"location": {location},
	})
}

// GroupLocations lists the locations the group operates in.
func (c *Client) GroupLocations(ctx context.Context) (json.RawMessage, error) {
	return c.getJSON(ctx, beservicePath+"/groupLocations", url.Values{
		"groupId": {c.groupID},
	})
}

// PerformBooking creates a booking. A reply without a truthy status and a
// real booking id is a *upstream.BusinessError.
func (c *Client) PerformBooking(ctx context.Context, payload *models.BookingPayload) (models.ID, error) {
	req, err := upstream.NewJSONRequest(ctx, http.MethodPost, c.baseURL+beservicePath+"/perform-booking", payload)
	if err != nil {
		return "", err
	}
	c.authorize(req)

	resp, err := upstream.Do(c.httpClient, Source, req)
	if err != nil {
		return "", err
	}

	// Any valid JSON is accepted here; a non-object reply is a business
	// failure, not a malformed one.
	var reply interface{}
	if err := upstream.Decode(Source, resp, &reply); err != nil {
		return "", err
	}

	data, _ := reply.(map[string]interface{})
	bookingID, ok := bookingIDFrom(data["bookingId"])
	if !truthy(data["status"]) || !ok {
		message, _ := data["message"].(string)
		if message == "" {
			message = "Booking creation failed"
		}
		return "", &upstream.BusinessError{Source: Source, Message: message, Response: reply}
	}

	return bookingID, nil
}

// RecordExternalPayment attaches a gateway payment to a booking and returns
// the upstream reply unchanged.
func (c *Client) RecordExternalPayment(ctx context.Context, record *models.ExternalPaymentRecord) (json.RawMessage, error) {
	req, err := upstream.NewJSONRequest(ctx, http.MethodPost, c.baseURL+recordPaymentPath, record)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := upstream.Do(c.httpClient, Source, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &upstream.UnavailableError{Source: Source, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var result json.RawMessage
	if err := upstream.Decode(Source, resp, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	c.authorize(req)

	resp, err := upstream.Do(c.httpClient, Source, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &upstream.UnavailableError{Source: Source, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var data json.RawMessage
	if err := upstream.Decode(Source, resp, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set(apiKeyHeader, c.apiKey)
}

// truthy mirrors how the booking API's status field is interpreted:
// false, 0, "" and null are failures.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

// bookingIDFrom extracts a usable booking id, rejecting placeholders.
func bookingIDFrom(v interface{}) (models.ID, bool) {
	switch t := v.(type) {
	case string:
		switch t {
		case "", "0", "null", "undefined":
			return "", false
		}
		return models.ID(t), true
	case float64:
		if t == 0 {
			return "", false
		}
		return models.ID(strconv.FormatFloat(t, 'f', -1, 64)), true
	default:
		return "", false
	}
}
