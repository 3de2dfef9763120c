package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"hotel_booking_edge/internal/cache"
	"hotel_booking_edge/internal/stayflexi"

	"golang.org/x/sync/singleflight"
)

// CatalogService serves the read-only hotel routes. Group listings and hotel
// content are cached when a Redis client is configured.
type CatalogService struct {
	stayflexi *stayflexi.Client
	cache     *cache.RedisClient
	cacheTTL  time.Duration
	// Singleflight group to collapse concurrent misses
	group singleflight.Group
	now   func() time.Time
}

// NewCatalogService creates a new catalog service. rc may be nil.
func NewCatalogService(sf *stayflexi.Client, rc *cache.RedisClient, cacheTTL time.Duration) *CatalogService {
	return &CatalogService{
		stayflexi: sf,
		cache:     rc,
		cacheTTL:  cacheTTL,
		group:     singleflight.Group{},
		now:       time.Now,
	}
}

// Availability returns rooms and rates for a stay.
func (cs *CatalogService) Availability(ctx context.Context, hotelID, checkin, checkout string) (json.RawMessage, error) {
	if err := requireAll(map[string]string{"hotelId": hotelID, "checkin": checkin, "checkout": checkout}, "hotelId", "checkin", "checkout"); err != nil {
		return nil, err
	}
	return cs.stayflexi.HotelDetailAdvanced(ctx, hotelID, checkin, checkout)
}

// Calendar returns per-day availability between two dates.
func (cs *CatalogService) Calendar(ctx context.Context, hotelID, fromDate, toDate string) (json.RawMessage, error) {
	if err := requireAll(map[string]string{"hotelId": hotelID, "fromDate": fromDate, "toDate": toDate}, "hotelId", "fromDate", "toDate"); err != nil {
		return nil, err
	}
	return cs.stayflexi.HotelCalendar(ctx, hotelID, fromDate, toDate)
}

// CancellationPolicy returns the cancellation data for a booking.
func (cs *CatalogService) CancellationPolicy(ctx context.Context, bookingID string) (json.RawMessage, error) {
	if bookingID == "" {
		return nil, &MissingFieldError{Field: "bookingId"}
	}
	return cs.stayflexi.BookingCancellation(ctx, bookingID)
}

// CheckinTimes returns the check-in slots for today's UTC date.
func (cs *CatalogService) CheckinTimes(ctx context.Context, hotelID string) (json.RawMessage, error) {
	if hotelID == "" {
		return nil, &MissingFieldError{Field: "hotelId"}
	}
	return cs.stayflexi.HotelCheckin(ctx, hotelID, cs.today())
}

// CheckoutTimes returns the check-out slots for today's UTC date.
func (cs *CatalogService) CheckoutTimes(ctx context.Context, hotelID string) (json.RawMessage, error) {
	if hotelID == "" {
		return nil, &MissingFieldError{Field: "hotelId"}
	}
	return cs.stayflexi.HotelCheckout(ctx, hotelID, cs.today())
}

// HotelContent returns descriptive content for one hotel.
func (cs *CatalogService) HotelContent(ctx context.Context, hotelID string) (json.RawMessage, error) {
	if hotelID == "" {
		return nil, &MissingFieldError{Field: "hotelId"}
	}
	return cs.cached(ctx, cache.GenerateCatalogCacheKey("hotel-content", hotelID), func(ctx context.Context) (json.RawMessage, error) {
		return cs.stayflexi.HotelContent(ctx, hotelID)
	})
}

// Hotels lists the hotels in the configured group.
func (cs *CatalogService) Hotels(ctx context.Context) (json.RawMessage, error) {
	return cs.cached(ctx, cache.GenerateCatalogCacheKey("hotels"), cs.stayflexi.GroupHotels)
}

// HotelsByLocation lists group hotels in one location.
func (cs *CatalogService) HotelsByLocation(ctx context.Context, location string) (json.RawMessage, error) {
	if location == "" {
		return nil, &MissingFieldError{Field: "location"}
	}
	return cs.cached(ctx, cache.GenerateCatalogCacheKey("hotels-by-location", location), func(ctx context.Context) (json.RawMessage, error) {
		return cs.stayflexi.GroupHotelsByLocation(ctx, location)
	})
}

// Locations lists the locations the group operates in.
func (cs *CatalogService) Locations(ctx context.Context) (json.RawMessage, error) {
	return cs.cached(ctx, cache.GenerateCatalogCacheKey("locations"), cs.stayflexi.GroupLocations)
}

func (cs *CatalogService) today() string {
	return cs.now().UTC().Format("2006-01-02")
}

// cached serves key from Redis when possible. Misses are collapsed through
// the singleflight group and only successful bodies are stored. The shared
// fetch runs detached from any one caller, so a caller that goes away only
// ends its own wait; the upstream client timeout still bounds the fetch.
func (cs *CatalogService) cached(ctx context.Context, key string, fetch func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	if cs.cache != nil {
		data, err := cs.cache.GetBytes(ctx, key)
		if err == nil {
			log.Printf("Cache hit for catalog key: %s", key)
			return json.RawMessage(data), nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("Catalog cache read failed for %s: %v", key, err)
		}
	}

	shared := context.WithoutCancel(ctx)
	ch := cs.group.DoChan(key, func() (interface{}, error) {
		data, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		if cs.cache != nil {
			if err := cs.cache.SetBytes(shared, key, data, cs.cacheTTL); err != nil {
				log.Printf("Failed to cache catalog results: %v", err)
			}
		}
		return data, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", key, res.Err)
		}
		return res.Val.(json.RawMessage), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func requireAll(values map[string]string, order ...string) error {
	for _, field := range order {
		if values[field] == "" {
			return &MissingFieldError{Field: field}
		}
	}
	return nil
}
