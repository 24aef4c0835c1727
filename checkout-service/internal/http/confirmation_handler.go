package http

import (
	"net/http"

	"github.com/fjod/go_travel/checkout-service/internal/confirmation"
)

// GET /booking-confirmation
//
// Renders whatever the query carries. Missing values fall back to the
// confirmation defaults, so the page never fails.
func BookingConfirmation(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, confirmation.Parse(r.URL.Query()))
}
