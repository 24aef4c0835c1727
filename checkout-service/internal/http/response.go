package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/catalog"
	"github.com/fjod/go_travel/checkout-service/internal/customization"
	"github.com/fjod/go_travel/checkout-service/internal/payment"
	"github.com/fjod/go_travel/checkout-service/internal/service"
	"github.com/fjod/go_travel/checkout-service/internal/session"
	"github.com/fjod/go_travel/checkout-service/internal/traveler"
	"github.com/fjod/go_travel/checkout-service/internal/wizard"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

type errorMapping struct {
	target error
	status int
	code   string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{d.ErrValidation, http.StatusUnprocessableEntity, "validation_failed"},

	{session.ErrSessionNotFound, http.StatusNotFound, "session_not_found"},
	{catalog.ErrPackageNotFound, http.StatusNotFound, "package_not_found"},
	{customization.ErrUnknownOption, http.StatusNotFound, "option_not_found"},

	{d.ErrUnknownPaymentMethod, http.StatusBadRequest, "invalid_argument"},
	{payment.ErrUnknownField, http.StatusBadRequest, "invalid_argument"},
	{payment.ErrUnsupportedCountry, http.StatusBadRequest, "invalid_argument"},
	{traveler.ErrUnknownField, http.StatusBadRequest, "invalid_argument"},
	{traveler.ErrIndexOutRange, http.StatusBadRequest, "invalid_argument"},
	{customization.ErrNotQuantifiable, http.StatusBadRequest, "invalid_argument"},
	{wizard.ErrInvalidTravelers, http.StatusBadRequest, "invalid_argument"},
	{service.ErrCVVNotStored, http.StatusBadRequest, "invalid_argument"},
	{service.ErrInvalidRequest, http.StatusBadRequest, "invalid_argument"},

	{payment.ErrPaymentInProgress, http.StatusConflict, "payment_in_progress"},
	{session.ErrConflict, http.StatusConflict, "conflict"},
	{wizard.ErrAlreadyConfirmed, http.StatusConflict, "already_confirmed"},
	{wizard.ErrWrongStep, http.StatusConflict, "wrong_step"},
	{wizard.ErrIllegalTransition, http.StatusConflict, "wrong_step"},
	{wizard.ErrNoPreviousStep, http.StatusConflict, "wrong_step"},
	{wizard.ErrPaymentRequired, http.StatusConflict, "wrong_step"},
	{wizard.ErrNoPaymentInFlight, http.StatusConflict, "no_payment_in_flight"},
	{payment.ErrPaymentCancelled, http.StatusConflict, "payment_cancelled"},

	{payment.ErrPaymentRejected, http.StatusPaymentRequired, "payment_rejected"},
	{payment.ErrPaymentTimeout, http.StatusGatewayTimeout, "timeout"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
	{payment.ErrGatewayUnavailable, http.StatusServiceUnavailable, "service_unavailable"},
}

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		resp := ErrorResponse{Error: err.Error(), Code: m.code}
		var verr *d.ValidationError
		if errors.As(err, &verr) {
			resp.Error = verr.Scope + " is incomplete"
			resp.Details = verr.Problems
		}
		var rejection *payment.RejectionError
		if errors.As(err, &rejection) {
			resp.Error = rejection.Reason
			resp.Details = []string{string(rejection.Code)}
		}
		respondJSON(w, m.status, resp)
		return
	}

	log.ErrorContext(r.Context(), "request failed",
		"method", r.Method, "path", r.URL.Path, "request_id", getRequestID(r.Context()), "error", err)
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	return reportDecodeError(w, json.NewDecoder(r.Body).Decode(dst))
}

// decodeOptionalJSON accepts an empty body and leaves dst untouched.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) (present, ok bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return false, true
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return false, true
	}
	return true, reportDecodeError(w, err)
}

func reportDecodeError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
		return false
	}
	respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
	return false
}
