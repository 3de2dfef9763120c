package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// M is a loose JSON object for error envelopes.
type M map[string]interface{}

// respondJSON writes data as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondRaw relays an upstream JSON body unchanged.
func respondRaw(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// Health reports process liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, M{"status": "healthy", "service": "booking-edge"})
}

// NotFound answers unknown paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, M{"success": false, "message": "Not found"})
}

// MethodNotAllowed answers known paths called with the wrong verb. The
// router has already set the Allow header.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusMethodNotAllowed, M{"success": false, "message": "Method not allowed"})
}

// Preflight answers OPTIONS for any routed path with 200 and no body,
// advertising the path's allowed methods.
func Preflight(w http.ResponseWriter, r *http.Request) {
	if allow := w.Header().Get("Allow"); allow != "" {
		w.Header().Set("Access-Control-Allow-Methods", allow)
	}
	w.WriteHeader(http.StatusOK)
}
