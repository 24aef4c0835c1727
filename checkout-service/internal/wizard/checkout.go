// Package wizard is the checkout controller: a four-step state machine that
// owns the cross-step state and delegates each step to its own component.
package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/confirmation"
	"github.com/fjod/go_travel/checkout-service/internal/customization"
	"github.com/fjod/go_travel/checkout-service/internal/payment"
	"github.com/fjod/go_travel/checkout-service/internal/pricing"
	"github.com/fjod/go_travel/checkout-service/internal/traveler"
)

const MaxTravelers = 20

// Checkout is one customer's pass through the wizard. Traveler count and
// check-in date are fixed at creation.
type Checkout struct {
	mu sync.Mutex

	id                 string
	pkg                d.Package
	travelers          int
	checkIn            string
	step               d.Step
	customizationTotal int64
	reference          string
	handoff            *confirmation.Handoff
	receipt            *payment.Receipt
	createdAt          time.Time
	updatedAt          time.Time

	selector  *customization.Selector
	collector *traveler.Collector
	payment   *payment.Form
}

func New(id string, pkg d.Package, travelers int, checkIn string, options []d.CustomizationOption) (*Checkout, error) {
	if travelers < 1 || travelers > MaxTravelers {
		return nil, fmt.Errorf("%d travelers: %w", travelers, ErrInvalidTravelers)
	}
	now := time.Now().UTC()
	c := &Checkout{
		id:        id,
		pkg:       pkg,
		travelers: travelers,
		checkIn:   checkIn,
		step:      d.StepCustomize,
		createdAt: now,
		updatedAt: now,
		collector: traveler.NewCollector(travelers),
		payment:   payment.NewForm(),
	}
	c.bindSelector(options)
	return c, nil
}

func (c *Checkout) bindSelector(options []d.CustomizationOption) {
	c.selector = customization.NewSelector(options, c.onCustomizationUpdate)
	c.customizationTotal = c.selector.Total()
}

// onCustomizationUpdate runs inside selector mutations, under c.mu.
func (c *Checkout) onCustomizationUpdate(_ []d.CustomizationOption, total int64) {
	c.customizationTotal = total
}

func (c *Checkout) ID() string {
	return c.id
}

func (c *Checkout) Step() d.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *Checkout) Package() d.Package {
	return c.pkg
}

func (c *Checkout) Travelers() int {
	return c.travelers
}

func (c *Checkout) CheckIn() string {
	return c.checkIn
}

func (c *Checkout) CustomizationTotal() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customizationTotal
}

// Totals derives the price breakdown from the current state.
func (c *Checkout) Totals() d.Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totals()
}

func (c *Checkout) totals() d.Totals {
	return pricing.Compute(c.pkg.Price, c.travelers, c.customizationTotal)
}

func (c *Checkout) Options() []d.CustomizationOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selector.Options()
}

func (c *Checkout) TravelerData() []d.TravelerData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collector.Travelers()
}

func (c *Checkout) PaymentView() payment.FormView {
	return c.payment.View()
}

// Handoff is the confirmation payload, available once confirmed.
func (c *Checkout) Handoff() (confirmation.Handoff, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handoff == nil {
		return confirmation.Handoff{}, false
	}
	return *c.handoff, true
}

func (c *Checkout) Receipt() (payment.Receipt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.receipt == nil {
		return payment.Receipt{}, false
	}
	return *c.receipt, true
}

func (c *Checkout) UpdatedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updatedAt
}

// Toggle selects or deselects an add-on. Only allowed while customizing.
func (c *Checkout) Toggle(optionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(d.StepCustomize); err != nil {
		return err
	}
	if err := c.selector.Toggle(optionID); err != nil {
		return err
	}
	c.touch()
	return nil
}

func (c *Checkout) ChangeQuantity(optionID string, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(d.StepCustomize); err != nil {
		return err
	}
	if err := c.selector.ChangeQuantity(optionID, delta); err != nil {
		return err
	}
	c.touch()
	return nil
}

// Continue advances one step. Customize and Review advance unconditionally,
// Travelers advances only through traveler validation and Payment only
// through a successful payment.
func (c *Checkout) Continue() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.step {
	case d.StepCustomize, d.StepReview:
		return c.transition(c.step + 1)
	case d.StepTravelers:
		return c.submitTravelers()
	case d.StepPayment:
		return ErrPaymentRequired
	default:
		return ErrAlreadyConfirmed
	}
}

// Back returns to the previous step. Nothing entered is discarded.
func (c *Checkout) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step.IsTerminal() {
		return ErrAlreadyConfirmed
	}
	if c.payment.Processing() {
		return payment.ErrPaymentInProgress
	}
	prev, ok := c.step.Previous()
	if !ok {
		return ErrNoPreviousStep
	}
	return c.transition(prev)
}

func (c *Checkout) UpdateTraveler(index int, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(d.StepTravelers); err != nil {
		return err
	}
	if err := c.collector.UpdateField(index, field, value); err != nil {
		return err
	}
	c.touch()
	return nil
}

func (c *Checkout) UpdateTravelerFields(index int, fields map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(d.StepTravelers); err != nil {
		return err
	}
	if err := c.collector.UpdateFields(index, fields); err != nil {
		return err
	}
	c.touch()
	return nil
}

// SubmitTravelers moves to Payment when every traveler is complete. On a
// validation failure the step stays at Travelers.
func (c *Checkout) SubmitTravelers() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitTravelers()
}

func (c *Checkout) submitTravelers() error {
	if err := c.require(d.StepTravelers); err != nil {
		return err
	}
	if _, err := c.collector.Submit(); err != nil {
		return err
	}
	return c.transition(d.StepPayment)
}

func (c *Checkout) SetPaymentMethod(m d.PaymentMethod) error {
	return c.editPayment(func(f *payment.Form) error { return f.SetMethod(m) })
}

func (c *Checkout) UpdatePaymentField(field, value string) error {
	return c.editPayment(func(f *payment.Form) error { return f.UpdateField(field, value) })
}

func (c *Checkout) SetSaveCard(save bool) error {
	return c.editPayment(func(f *payment.Form) error { return f.SetSaveCard(save) })
}

func (c *Checkout) editPayment(fn func(*payment.Form) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(d.StepPayment); err != nil {
		return err
	}
	if err := fn(c.payment); err != nil {
		return err
	}
	c.touch()
	return nil
}

// BeginPayment validates the payment form, marks it processing and returns
// the charge to authorize. The booking reference is fixed by the first
// attempt and reused by later ones.
func (c *Checkout) BeginPayment() (payment.Charge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(d.StepPayment); err != nil {
		return payment.Charge{}, err
	}
	data, err := c.payment.Begin()
	if err != nil {
		return payment.Charge{}, err
	}
	if c.reference == "" {
		c.reference = confirmation.NewReference()
	}
	c.touch()
	return payment.Charge{
		Reference: c.reference,
		Amount:    c.totals().Total,
		Currency:  d.Currency,
		Payment:   data,
	}, nil
}

// CompletePayment confirms the booking with the gateway's receipt.
func (c *Checkout) CompletePayment(receipt payment.Receipt) (confirmation.Handoff, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.require(d.StepPayment); err != nil {
		return confirmation.Handoff{}, err
	}
	if !c.payment.Processing() {
		return confirmation.Handoff{}, ErrNoPaymentInFlight
	}
	c.payment.Finish(nil)
	if err := c.transition(d.StepConfirmed); err != nil {
		return confirmation.Handoff{}, err
	}

	c.receipt = &receipt
	c.handoff = &confirmation.Handoff{
		Reference:   c.reference,
		PackageName: c.pkg.Name,
		Total:       c.totals().Total,
	}
	return *c.handoff, nil
}

// FailPayment ends a failed attempt. The wizard stays at Payment.
func (c *Checkout) FailPayment(cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payment.Finish(cause)
	c.touch()
}

// SubmitPayment runs one payment attempt against gw and confirms the
// booking on success.
func (c *Checkout) SubmitPayment(ctx context.Context, gw payment.Gateway) (confirmation.Handoff, error) {
	charge, err := c.BeginPayment()
	if err != nil {
		return confirmation.Handoff{}, err
	}
	receipt, err := gw.Authorize(ctx, charge)
	if err != nil {
		c.FailPayment(err)
		return confirmation.Handoff{}, err
	}
	return c.CompletePayment(receipt)
}

func (c *Checkout) require(step d.Step) error {
	if c.step == step {
		return nil
	}
	if c.step.IsTerminal() {
		return ErrAlreadyConfirmed
	}
	return fmt.Errorf("at %s, need %s: %w", c.step, step, ErrWrongStep)
}

func (c *Checkout) transition(to d.Step) error {
	if !d.CanTransitionTo(c.step, to) {
		return fmt.Errorf("%s -> %s: %w", c.step, to, ErrIllegalTransition)
	}
	c.step = to
	c.touch()
	return nil
}

func (c *Checkout) touch() {
	c.updatedAt = time.Now().UTC()
}
