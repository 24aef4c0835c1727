package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/service"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	svc     service.CheckoutService
	timeout time.Duration
	log     *slog.Logger
}

func NewCatalogHandler(svc service.CheckoutService, timeout time.Duration, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, timeout: timeout, log: log}
}

type PaymentMethodsResponseDTO struct {
	Methods          []d.PaymentMethodInfo `json:"methods"`
	BillingCountries []string              `json:"billing_countries"`
	DefaultCountry   string                `json:"default_country"`
}

// GET /api/v1/packages
func (h *CatalogHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	packages, err := h.svc.ListPackages(ctx)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, packages)
}

// GET /api/v1/packages/{id}
func (h *CatalogHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_package_id", "id must be a positive integer")
		return
	}

	pkg, err := h.svc.GetPackage(ctx, id)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, pkg)
}

// GET /api/v1/payment-methods
func (h *CatalogHandler) PaymentMethods(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, PaymentMethodsResponseDTO{
		Methods:          d.PaymentMethods,
		BillingCountries: d.BillingCountries,
		DefaultCountry:   d.DefaultBillingCountry,
	})
}
