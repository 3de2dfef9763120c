package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel_booking_edge/internal/cache"
	"hotel_booking_edge/internal/config"
	"hotel_booking_edge/internal/handlers"
	"hotel_booking_edge/internal/middleware"
	"hotel_booking_edge/internal/razorpay"
	"hotel_booking_edge/internal/routes"
	"hotel_booking_edge/internal/services"
	"hotel_booking_edge/internal/stayflexi"
)

func main() {
	log.Println("Starting Booking Edge...")

	cfg := config.Load()

	// Initialize Redis connection; the catalog runs uncached without it
	var catalogCache *cache.RedisClient
	if cfg.CacheEnabled() {
		rc, err := cache.NewRedisClient(cache.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Printf("Catalog cache disabled: %v", err)
		} else {
			catalogCache = rc
			defer catalogCache.Close()
		}
	}

	if cfg.StayflexiAPIKey == "" {
		log.Println("STAYFLEXI_API_KEY is not set; upstream calls will be rejected")
	}
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Println("Razorpay credentials are not set; order creation and payment confirmation will fail")
	}

	// Upstream clients
	sf := stayflexi.NewClient(cfg.StayflexiBaseURL, cfg.StayflexiAPIKey, cfg.StayflexiGroupID, cfg.UpstreamTimeout)
	gateway := razorpay.NewClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.UpstreamTimeout)

	// Initialize services and handlers
	catalogHandlers := handlers.NewCatalogHandlers(services.NewCatalogService(sf, catalogCache, cfg.CatalogCacheTTL))
	bookingHandlers := handlers.NewBookingHandlers(services.NewBookingService(sf))
	paymentHandlers := handlers.NewPaymentHandlers(services.NewPaymentService(gateway, sf))

	router := routes.NewRouter(cfg.BasePath, catalogHandlers, bookingHandlers, paymentHandlers)

	// request id → logging → security headers → CORS → router
	handler := middleware.Chain(router,
		middleware.RequestID,
		middleware.Logging,
		middleware.SecurityHeaders,
		middleware.CORS(cfg.AllowedOrigins),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Booking Edge listening on %s, routes under %s/api", cfg.Port, cfg.BasePath)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Booking Edge...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		return
	}

	log.Println("Booking Edge exited")
}
