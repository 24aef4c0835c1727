package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/go_travel/checkout-service/internal/service"
	"github.com/fjod/go_travel/checkout-service/internal/wizard"
	"github.com/go-chi/chi/v5"
)

type CheckoutHandler struct {
	svc     service.CheckoutService
	timeout time.Duration
	log     *slog.Logger
}

func NewCheckoutHandler(svc service.CheckoutService, timeout time.Duration, log *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, timeout: timeout, log: log}
}

type StartCheckoutRequestDTO struct {
	PackageID int64  `json:"package_id"`
	Travelers int    `json:"travelers"`
	CheckIn   string `json:"check_in"`
}

type QuantityRequestDTO struct {
	Delta int `json:"delta"`
}

type PaymentUpdateRequestDTO struct {
	Method   string            `json:"method,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	SaveCard *bool             `json:"save_card,omitempty"`
}

type PaymentResultDTO struct {
	Reference     string `json:"reference"`
	RedirectURL   string `json:"redirect_url"`
	Total         int64  `json:"total"`
	TransactionID string `json:"transaction_id"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req StartCheckoutRequestDTO
	if _, ok := decodeOptionalJSON(w, r, &req); !ok {
		return
	}
	if req.PackageID < 0 || req.Travelers < 0 {
		respondError(w, http.StatusBadRequest, "invalid_argument", "package_id and travelers must not be negative")
		return
	}

	view, err := h.svc.Start(ctx, service.StartRequest{
		PackageID: req.PackageID,
		Travelers: req.Travelers,
		CheckIn:   req.CheckIn,
	})
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// GET /api/v1/checkout/{id}
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, func(ctx context.Context, id string) (wizard.View, error) {
		return h.svc.Get(ctx, id)
	})
}

// POST /api/v1/checkout/{id}/customizations/{optionID}/toggle
func (h *CheckoutHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	optionID := chi.URLParam(r, "optionID")
	h.respondView(w, r, func(ctx context.Context, id string) (wizard.View, error) {
		return h.svc.Toggle(ctx, id, optionID)
	})
}

// POST /api/v1/checkout/{id}/customizations/{optionID}/quantity
func (h *CheckoutHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var req QuantityRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	optionID := chi.URLParam(r, "optionID")
	h.respondView(w, r, func(ctx context.Context, id string) (wizard.View, error) {
		return h.svc.ChangeQuantity(ctx, id, optionID, req.Delta)
	})
}

// POST /api/v1/checkout/{id}/continue
func (h *CheckoutHandler) Continue(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, h.svc.Continue)
}

// POST /api/v1/checkout/{id}/back
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, h.svc.Back)
}

// PATCH /api/v1/checkout/{id}/travelers/{index}
func (h *CheckoutHandler) UpdateTraveler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		respondError(w, http.StatusBadRequest, "invalid_index", "index must be a non-negative integer")
		return
	}
	var fields map[string]string
	if !decodeJSON(w, r, &fields) {
		return
	}
	h.respondView(w, r, func(ctx context.Context, id string) (wizard.View, error) {
		return h.svc.UpdateTraveler(ctx, id, index, fields)
	})
}

// POST /api/v1/checkout/{id}/travelers/submit
func (h *CheckoutHandler) SubmitTravelers(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, h.svc.SubmitTravelers)
}

// PATCH /api/v1/checkout/{id}/payment
func (h *CheckoutHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentUpdateRequestDTO
	if !decodeJSON(w, r, &req) {
		return
	}
	update, err := req.toUpdate()
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}
	h.respondView(w, r, func(ctx context.Context, id string) (wizard.View, error) {
		return h.svc.UpdatePayment(ctx, id, update)
	})
}

// POST /api/v1/checkout/{id}/payment/submit
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var patch *service.PaymentUpdate
	var req PaymentUpdateRequestDTO
	present, ok := decodeOptionalJSON(w, r, &req)
	if !ok {
		return
	}
	if present {
		update, err := req.toUpdate()
		if err != nil {
			handleServiceError(w, r, h.log, err)
			return
		}
		patch = &update
	}

	res, err := h.svc.SubmitPayment(ctx, chi.URLParam(r, "id"), patch)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}

	w.Header().Set("Location", res.RedirectURL)
	respondJSON(w, http.StatusOK, PaymentResultDTO{
		Reference:     res.Reference,
		RedirectURL:   res.RedirectURL,
		Total:         res.Total,
		TransactionID: res.TransactionID,
	})
}

// POST /api/v1/checkout/{id}/payment/cancel
func (h *CheckoutHandler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.svc.CancelPayment(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *CheckoutHandler) respondView(w http.ResponseWriter, r *http.Request,
	call func(ctx context.Context, id string) (wizard.View, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	view, err := call(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (req PaymentUpdateRequestDTO) toUpdate() (service.PaymentUpdate, error) {
	method, err := service.ParseMethod(req.Method)
	if err != nil {
		return service.PaymentUpdate{}, err
	}
	return service.PaymentUpdate{Method: method, Fields: req.Fields, SaveCard: req.SaveCard}, nil
}
