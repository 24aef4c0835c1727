package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/go_travel/checkout-service/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultRequestTimeout     = 30 * time.Second
	DefaultMaxRequestBodySize = 1 << 20 // 1MB
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

// NewRouter builds the service's HTTP handler with tracing around every route.
func NewRouter(cfg RouterConfig, svc service.CheckoutService, log *slog.Logger) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.MaxRequestBodySize <= 0 {
		cfg.MaxRequestBodySize = DefaultMaxRequestBodySize
	}
	catalogHandler := NewCatalogHandler(svc, cfg.RequestTimeout, log)
	checkoutHandler := NewCheckoutHandler(svc, cfg.RequestTimeout, log)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(MaxBodySize(cfg.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/booking-confirmation", BookingConfirmation)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/packages", catalogHandler.ListPackages)
		r.Get("/packages/{id}", catalogHandler.GetPackage)
		r.Get("/payment-methods", catalogHandler.PaymentMethods)

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Start)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", checkoutHandler.Get)
				r.Post("/customizations/{optionID}/toggle", checkoutHandler.Toggle)
				r.Post("/customizations/{optionID}/quantity", checkoutHandler.ChangeQuantity)
				r.Post("/continue", checkoutHandler.Continue)
				r.Post("/back", checkoutHandler.Back)
				r.Patch("/travelers/{index}", checkoutHandler.UpdateTraveler)
				r.Post("/travelers/submit", checkoutHandler.SubmitTravelers)
				r.Patch("/payment", checkoutHandler.UpdatePayment)
				r.Post("/payment/submit", checkoutHandler.SubmitPayment)
				r.Post("/payment/cancel", checkoutHandler.CancelPayment)
			})
		})
	})

	return otelhttp.NewHandler(r, "checkout-service")
}
