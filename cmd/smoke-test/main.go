package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type SmokeTest struct {
	baseURL string
	client  *http.Client
}

type TestResult struct {
	TestName   string
	Success    bool
	Error      string
	Duration   time.Duration
	StatusCode int
}

type ValidationResult struct {
	TotalTests  int
	PassedTests int
	FailedTests int
	Results     []TestResult
}

func NewSmokeTest(baseURL string) *SmokeTest {
	return &SmokeTest{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// validateResponse checks the status code and, when given, the JSON fields
// of the body.
func (st *SmokeTest) validateResponse(testName string, resp *http.Response, expectedStatus int, expectedFields map[string]interface{}) TestResult {
	result := TestResult{
		TestName:   testName,
		StatusCode: resp.StatusCode,
	}

	if resp.StatusCode != expectedStatus {
		result.Error = fmt.Sprintf("Expected status %d, got %d", expectedStatus, resp.StatusCode)
		return result
	}

	if len(expectedFields) > 0 {
		var responseData map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&responseData); err != nil {
			result.Error = fmt.Sprintf("Failed to decode response: %v", err)
			return result
		}

		for field, expectedValue := range expectedFields {
			actualValue, exists := responseData[field]
			if !exists {
				result.Error = fmt.Sprintf("Missing field: %s", field)
				return result
			}
			if actualValue != expectedValue {
				result.Error = fmt.Sprintf("Field %s: expected %v, got %v", field, expectedValue, actualValue)
				return result
			}
		}
	}

	result.Success = true
	return result
}

// runCatalogLoad hammers the cacheable catalog routes from concurrent users.
func (st *SmokeTest) runCatalogLoad(concurrentUsers int, duration time.Duration) ValidationResult {
	log.Printf("Starting catalog load with %d concurrent users for %v", concurrentUsers, duration)

	var wg sync.WaitGroup
	endTime := time.Now().Add(duration)
	paths := []string{"/api/hotels", "/api/locations", "/api/hotels-by-locations"}

	var (
		totalRequests int
		successCount  int
		errorCount    int
		results       []TestResult
		mu            sync.Mutex
	)

	for i := 0; i < concurrentUsers; i++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			for time.Now().Before(endTime) {
				path := paths[rand.Intn(len(paths))]
				name := fmt.Sprintf("Catalog %s user %d", path, userID)
				testStart := time.Now()

				resp, err := st.client.Get(st.baseURL + path)
				var result TestResult
				if err != nil {
					result = TestResult{TestName: name, Error: fmt.Sprintf("Request failed: %v", err)}
				} else {
					result = st.validateResponse(name, resp, http.StatusOK, nil)
					io.Copy(io.Discard, resp.Body)
					resp.Body.Close()
				}
				result.Duration = time.Since(testStart)

				mu.Lock()
				totalRequests++
				if result.Success {
					successCount++
				} else {
					errorCount++
				}
				results = append(results, result)
				mu.Unlock()

				time.Sleep(time.Duration(rand.Intn(500)) * time.Millisecond)
			}
		}(i)
	}

	wg.Wait()

	log.Printf("Catalog load completed:")
	log.Printf("  Total requests: %d", totalRequests)
	log.Printf("  Successful: %d", successCount)
	log.Printf("  Failed: %d", errorCount)
	if totalRequests > 0 {
		log.Printf("  Success rate: %.2f%%", float64(successCount)/float64(totalRequests)*100)
	}

	return ValidationResult{
		TotalTests:  totalRequests,
		PassedTests: successCount,
		FailedTests: errorCount,
		Results:     results,
	}
}

func (st *SmokeTest) post(testName, path string, body interface{}, expectedStatus int, expectedFields map[string]interface{}) TestResult {
	testStart := time.Now()

	jsonData, err := json.Marshal(body)
	if err != nil {
		return TestResult{TestName: testName, Error: fmt.Sprintf("Failed to marshal request: %v", err)}
	}

	resp, err := st.client.Post(st.baseURL+path, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return TestResult{TestName: testName, Error: fmt.Sprintf("Request failed: %v", err), Duration: time.Since(testStart)}
	}
	defer resp.Body.Close()

	result := st.validateResponse(testName, resp, expectedStatus, expectedFields)
	result.Duration = time.Since(testStart)
	return result
}

// runNegativeChecks exercises the rejection paths. None of them should
// create anything upstream.
func (st *SmokeTest) runNegativeChecks() []TestResult {
	log.Printf("Starting negative checks")

	results := []TestResult{
		st.post("Missing booking data", "/api/create-booking",
			map[string]interface{}{"hotelId": "24316"},
			http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Missing required booking data."}),
		st.post("Zero amount order", "/api/create-razorpay-order",
			map[string]interface{}{"amount": 0},
			http.StatusBadRequest, map[string]interface{}{"success": false, "error": "Invalid or missing amount"}),
		st.post("Tampered signature", "/api/confirm-payment",
			map[string]interface{}{
				"razorpay_payment_id": "pay_smoke",
				"razorpay_order_id":   "order_smoke",
				"razorpay_signature":  "0000000000000000000000000000000000000000000000000000000000000000",
				"bookingId":           "smoke",
			},
			http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid payment signature"}),
		st.preflight("Preflight confirm-payment", "/api/confirm-payment"),
	}

	for _, r := range results {
		log.Printf("  %s: success=%v %s", r.TestName, r.Success, r.Error)
	}
	return results
}

func (st *SmokeTest) preflight(testName, path string) TestResult {
	testStart := time.Now()

	req, err := http.NewRequest(http.MethodOptions, st.baseURL+path, nil)
	if err != nil {
		return TestResult{TestName: testName, Error: err.Error()}
	}
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := st.client.Do(req)
	if err != nil {
		return TestResult{TestName: testName, Error: fmt.Sprintf("Request failed: %v", err), Duration: time.Since(testStart)}
	}
	defer resp.Body.Close()

	result := st.validateResponse(testName, resp, http.StatusOK, nil)
	if result.Success && resp.Header.Get("Access-Control-Allow-Origin") == "" {
		result.Success = false
		result.Error = "Missing Access-Control-Allow-Origin"
	}
	result.Duration = time.Since(testStart)
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	godotenv.Load()

	baseURL := getEnv("EDGE_URL", "http://localhost:8080/backend")
	users, err := strconv.Atoi(getEnv("SMOKE_USERS", "5"))
	if err != nil || users <= 0 {
		users = 5
	}
	duration, err := time.ParseDuration(getEnv("SMOKE_DURATION", "10s"))
	if err != nil || duration <= 0 {
		duration = 10 * time.Second
	}

	st := NewSmokeTest(baseURL)
	log.Printf("Smoke testing %s", baseURL)

	load := st.runCatalogLoad(users, duration)
	negative := st.runNegativeChecks()

	failed := 0
	for _, r := range negative {
		if !r.Success {
			failed++
		}
	}

	fmt.Println()
	fmt.Println("=== Summary ===")
	fmt.Printf("Catalog requests: %d (passed %d, failed %d)\n", load.TotalTests, load.PassedTests, load.FailedTests)
	fmt.Printf("Negative checks:  %d (failed %d)\n", len(negative), failed)

	if failed > 0 {
		os.Exit(1)
	}
}
