package service

import (
	"context"
	"log/slog"
	"sync"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/confirmation"
	"github.com/fjod/go_travel/checkout-service/internal/payment"
	"github.com/fjod/go_travel/checkout-service/internal/publisher"
	"github.com/fjod/go_travel/checkout-service/internal/session"
	"github.com/fjod/go_travel/checkout-service/internal/wizard"
)

const (
	DefaultPackageID int64 = 1
	DefaultTravelers       = 2

	failureSaveAttempts = 2
)

type CheckoutService interface {
	ListPackages(ctx context.Context) ([]d.Package, error)
	GetPackage(ctx context.Context, id int64) (d.Package, error)

	Start(ctx context.Context, req StartRequest) (wizard.View, error)
	Get(ctx context.Context, id string) (wizard.View, error)
	Toggle(ctx context.Context, id, optionID string) (wizard.View, error)
	ChangeQuantity(ctx context.Context, id, optionID string, delta int) (wizard.View, error)
	Continue(ctx context.Context, id string) (wizard.View, error)
	Back(ctx context.Context, id string) (wizard.View, error)
	UpdateTraveler(ctx context.Context, id string, index int, fields map[string]string) (wizard.View, error)
	SubmitTravelers(ctx context.Context, id string) (wizard.View, error)
	UpdatePayment(ctx context.Context, id string, update PaymentUpdate) (wizard.View, error)
	SubmitPayment(ctx context.Context, id string, update *PaymentUpdate) (PaymentResult, error)
	CancelPayment(ctx context.Context, id string) error
}

// PackageCatalog is the read side of the package catalog.
type PackageCatalog interface {
	GetPackage(ctx context.Context, id int64) (d.Package, error)
	ListPackages(ctx context.Context) ([]d.Package, error)
}

// Authorizer charges a payment. *payment.Processor is the production one.
type Authorizer interface {
	Authorize(ctx context.Context, charge payment.Charge) (payment.Receipt, error)
}

type EventOutbox interface {
	Add(eventType, aggregateID string, payload any) (*publisher.OutboxEvent, error)
}

// StartRequest opens a session. Zero values take the storefront defaults.
type StartRequest struct {
	PackageID int64
	Travelers int
	CheckIn   string
}

// PaymentUpdate is a partial edit of the payment form. Nil fields are left
// unchanged.
type PaymentUpdate struct {
	Method   *d.PaymentMethod
	Fields   map[string]string
	SaveCard *bool
}

func (u *PaymentUpdate) empty() bool {
	return u == nil || (u.Method == nil && len(u.Fields) == 0 && u.SaveCard == nil)
}

type PaymentResult struct {
	Reference     string
	RedirectURL   string
	Total         int64
	TransactionID string
	Handoff       confirmation.Handoff
}

type CheckoutServiceImpl struct {
	catalog         PackageCatalog
	store           session.Store
	payments        Authorizer
	outbox          EventOutbox
	confirmationURL string
	log             *slog.Logger

	mu       sync.Mutex
	inflight map[string]func()
}

func NewCheckoutService(
	catalog PackageCatalog,
	store session.Store,
	payments Authorizer,
	outbox EventOutbox,
	confirmationURL string,
	log *slog.Logger) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		catalog:         catalog,
		store:           store,
		payments:        payments,
		outbox:          outbox,
		confirmationURL: confirmationURL,
		log:             log,
		inflight:        make(map[string]func()),
	}
}
