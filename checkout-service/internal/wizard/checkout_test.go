package wizard

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/fjod/go_travel/checkout-service/internal/confirmation"
	"github.com/fjod/go_travel/checkout-service/internal/customization"
	"github.com/fjod/go_travel/checkout-service/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var boracay = d.Package{
	ID:          1,
	Name:        "Boracay Beach Paradise",
	Destination: "Boracay Island",
	Price:       12999,
	Duration:    "3 Days",
	Image:       "/boracay-beach-paradise.jpg",
}

func newCheckout(t *testing.T, travelers int) *Checkout {
	t.Helper()
	c, err := New("sess-1", boracay, travelers, "2026-12-20", customization.DefaultOptions())
	require.NoError(t, err)
	return c
}

var travelerFields = map[string]string{
	"firstName":      "Maria",
	"lastName":       "Santos",
	"email":          "maria@example.com",
	"phone":          "+63 917 123 4567",
	"nationality":    "Filipino",
	"dateOfBirth":    "1990-04-12",
	"passportNumber": "P1234567A",
	"passportExpiry": "2031-01-01",
}

func toTravelers(t *testing.T, c *Checkout) {
	t.Helper()
	require.NoError(t, c.Continue())
	require.NoError(t, c.Continue())
	require.Equal(t, d.StepTravelers, c.Step())
}

func toPayment(t *testing.T, c *Checkout) {
	t.Helper()
	toTravelers(t, c)
	for i := 0; i < c.Travelers(); i++ {
		require.NoError(t, c.UpdateTravelerFields(i, travelerFields))
	}
	require.NoError(t, c.SubmitTravelers())
	require.Equal(t, d.StepPayment, c.Step())
}

func fillCardPayment(t *testing.T, c *Checkout) {
	t.Helper()
	for field, value := range map[string]string{
		"cardName":       "Maria Santos",
		"cardNumber":     "4111 1111 1111 1111",
		"expiryDate":     "12/29",
		"cvv":            "123",
		"billingAddress": "123 Rizal Ave",
		"billingCity":    "Makati",
		"billingZip":     "1226",
	} {
		require.NoError(t, c.UpdatePaymentField(field, value))
	}
}

func TestNew_InitialState(t *testing.T) {
	c := newCheckout(t, 2)

	assert.Equal(t, d.StepCustomize, c.Step())
	assert.Equal(t, int64(0), c.CustomizationTotal())
	assert.Len(t, c.TravelerData(), 2)
	assert.Equal(t, d.Totals{
		PricePerPerson: 12999, Travelers: 2, BasePrice: 25998,
		Subtotal: 25998, Tax: 3120, Total: 29118,
	}, c.Totals())
}

func TestNew_RejectsTravelerCount(t *testing.T) {
	_, err := New("s", boracay, 0, "", nil)
	assert.ErrorIs(t, err, ErrInvalidTravelers)
	_, err = New("s", boracay, 21, "", nil)
	assert.ErrorIs(t, err, ErrInvalidTravelers)
}

func TestCustomization_TracksTotal(t *testing.T) {
	c := newCheckout(t, 2)

	require.NoError(t, c.Toggle("flight-premium"))
	assert.Equal(t, int64(3500), c.CustomizationTotal())
	totals := c.Totals()
	assert.Equal(t, int64(29498), totals.Subtotal)
	assert.Equal(t, int64(3540), totals.Tax)
	assert.Equal(t, int64(33038), totals.Total)
}

func TestCustomization_OnlyAtCustomizeStep(t *testing.T) {
	c := newCheckout(t, 2)
	require.NoError(t, c.Continue())

	assert.ErrorIs(t, c.Toggle("flight-premium"), ErrWrongStep)
	assert.ErrorIs(t, c.ChangeQuantity("activity-diving", 1), ErrWrongStep)
	assert.Equal(t, int64(0), c.CustomizationTotal())
}

func TestContinue_UnconditionalThroughReview(t *testing.T) {
	c := newCheckout(t, 1)

	require.NoError(t, c.Continue())
	assert.Equal(t, d.StepReview, c.Step())
	require.NoError(t, c.Continue())
	assert.Equal(t, d.StepTravelers, c.Step())
}

func TestSubmitTravelers_IncompleteStaysAtTravelers(t *testing.T) {
	c := newCheckout(t, 2)
	toTravelers(t, c)
	require.NoError(t, c.UpdateTravelerFields(0, travelerFields))

	err := c.SubmitTravelers()
	assert.ErrorIs(t, err, d.ErrValidation)
	assert.Equal(t, d.StepTravelers, c.Step())

	// Continue routes through the same guard
	assert.ErrorIs(t, c.Continue(), d.ErrValidation)
	assert.Equal(t, d.StepTravelers, c.Step())
	assert.Equal(t, "Maria", c.TravelerData()[0].FirstName)
}

func TestContinue_PaymentStepNeedsSubmission(t *testing.T) {
	c := newCheckout(t, 1)
	toPayment(t, c)

	assert.ErrorIs(t, c.Continue(), ErrPaymentRequired)
	assert.Equal(t, d.StepPayment, c.Step())
}

func TestBack_PreservesData(t *testing.T) {
	c := newCheckout(t, 2)
	require.NoError(t, c.Toggle("hotel-suite"))
	toPayment(t, c)
	require.NoError(t, c.UpdatePaymentField("cardName", "Maria Santos"))

	require.NoError(t, c.Back())
	assert.Equal(t, d.StepTravelers, c.Step())
	for _, tr := range c.TravelerData() {
		assert.Equal(t, "Maria", tr.FirstName)
		assert.Equal(t, "P1234567A", tr.PassportNumber)
		assert.Equal(t, "2031-01-01", tr.PassportExpiry)
	}

	require.NoError(t, c.Back())
	require.NoError(t, c.Back())
	assert.Equal(t, d.StepCustomize, c.Step())
	assert.Equal(t, int64(5500), c.CustomizationTotal())

	require.NoError(t, c.Continue())
	require.NoError(t, c.Continue())
	require.NoError(t, c.Continue())
	assert.Equal(t, d.StepPayment, c.Step())
	assert.Equal(t, "Maria Santos", c.PaymentView().CardName)
}

func TestBack_FromCustomize(t *testing.T) {
	c := newCheckout(t, 1)
	assert.ErrorIs(t, c.Back(), ErrNoPreviousStep)
}

func TestSubmitPayment_GCashIgnoresCardFields(t *testing.T) {
	c := newCheckout(t, 2)
	toPayment(t, c)
	require.NoError(t, c.SetPaymentMethod(d.MethodGCash))
	for field, value := range map[string]string{
		"mobileNumber":   "9171234567",
		"accountName":    "Maria Santos",
		"billingAddress": "123 Rizal Ave",
		"billingCity":    "Makati",
		"billingZip":     "1226",
	} {
		require.NoError(t, c.UpdatePaymentField(field, value))
	}
	gw := &mockGateway{}

	h, err := c.SubmitPayment(context.Background(), gw)
	require.NoError(t, err)
	assert.Equal(t, d.StepConfirmed, c.Step())
	assert.Equal(t, int64(29118), h.Total)
	assert.Equal(t, d.MethodGCash, gw.charges[0].Payment.Method())
}

func TestSubmitPayment_InvalidStaysAtPayment(t *testing.T) {
	c := newCheckout(t, 1)
	toPayment(t, c)
	gw := &mockGateway{}

	_, err := c.SubmitPayment(context.Background(), gw)
	var verr *d.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "card", verr.Scope)
	assert.Equal(t, d.StepPayment, c.Step())
	assert.Equal(t, 0, gw.calls)
}

func TestSubmitPayment_RejectionStaysAtPaymentAndReusesReference(t *testing.T) {
	c := newCheckout(t, 1)
	toPayment(t, c)
	fillCardPayment(t, c)
	gw := &mockGateway{err: &payment.RejectionError{Code: payment.RefusalCardDeclined, Reason: "declined by issuer"}}

	_, err := c.SubmitPayment(context.Background(), gw)
	assert.ErrorIs(t, err, payment.ErrPaymentRejected)
	assert.Equal(t, d.StepPayment, c.Step())
	view := c.PaymentView()
	assert.False(t, view.Processing)
	assert.False(t, view.HasCVV)
	assert.Equal(t, "Maria Santos", view.CardName)

	require.NoError(t, c.UpdatePaymentField("cvv", "123"))
	gw.err = nil
	h, err := c.SubmitPayment(context.Background(), gw)
	require.NoError(t, err)
	require.Len(t, gw.charges, 2)
	assert.Equal(t, gw.charges[0].Reference, gw.charges[1].Reference)
	assert.Equal(t, gw.charges[0].Reference, h.Reference)
}

func TestConfirmed_IsTerminal(t *testing.T) {
	c := newCheckout(t, 1)
	toPayment(t, c)
	fillCardPayment(t, c)
	_, err := c.SubmitPayment(context.Background(), &mockGateway{})
	require.NoError(t, err)

	assert.ErrorIs(t, c.Back(), ErrAlreadyConfirmed)
	assert.ErrorIs(t, c.Continue(), ErrAlreadyConfirmed)
	assert.ErrorIs(t, c.UpdatePaymentField("cardName", "x"), ErrAlreadyConfirmed)
	_, err = c.SubmitPayment(context.Background(), &mockGateway{})
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)

	r, ok := c.Receipt()
	require.True(t, ok)
	assert.Equal(t, "TXN-TEST", r.TransactionID)
}

func TestBack_BlockedWhileProcessing(t *testing.T) {
	c := newCheckout(t, 1)
	toPayment(t, c)
	fillCardPayment(t, c)

	_, err := c.BeginPayment()
	require.NoError(t, err)

	assert.ErrorIs(t, c.Back(), payment.ErrPaymentInProgress)
	_, err = c.BeginPayment()
	assert.ErrorIs(t, err, payment.ErrPaymentInProgress)

	c.FailPayment(payment.ErrPaymentCancelled)
	require.NoError(t, c.Back())
}

func TestCompletePayment_RequiresInFlightPayment(t *testing.T) {
	c := newCheckout(t, 1)
	toPayment(t, c)

	_, err := c.CompletePayment(payment.Receipt{})
	assert.ErrorIs(t, err, ErrNoPaymentInFlight)
}

// Two travelers, premium flight and two island hopping tickets, paid by
// card: the redirect carries round((25998 + 3500 + 3600) * 1.12).
func TestEndToEnd_CardCheckout(t *testing.T) {
	c := newCheckout(t, 2)

	require.NoError(t, c.Toggle("flight-premium"))
	require.NoError(t, c.Toggle("activity-island-hopping"))
	require.NoError(t, c.ChangeQuantity("activity-island-hopping", 1))
	assert.Equal(t, int64(7100), c.CustomizationTotal())

	toPayment(t, c)
	fillCardPayment(t, c)

	h, err := c.SubmitPayment(context.Background(), &mockGateway{})
	require.NoError(t, err)

	raw, err := h.URL("/booking-confirmation")
	require.NoError(t, err)
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "37070", u.Query().Get("total"))
	assert.Equal(t, "Boracay Beach Paradise", u.Query().Get("package"))
	assert.True(t, strings.HasPrefix(u.Query().Get("ref"), confirmation.ReferencePrefix))

	got, ok := c.Handoff()
	require.True(t, ok)
	assert.Equal(t, h, got)
}

func TestSummary(t *testing.T) {
	c, err := New("s", boracay, 1, "", customization.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, c.Toggle("meal-full-board"))

	s := c.Summary()
	assert.Equal(t, "Not selected", s.CheckIn)
	assert.Equal(t, "1 person", s.Travelers)
	assert.Equal(t, "Boracay Island", s.Destination)
	require.Len(t, s.AddOns, 1)
	assert.Equal(t, "meal-full-board", s.AddOns[0].ID)
	assert.Equal(t, int64(12999+2800), s.Totals.Subtotal)

	assert.Equal(t, "2 persons", newCheckout(t, 2).Summary().Travelers)
}

func TestJSON_RoundTrip(t *testing.T) {
	c := newCheckout(t, 2)
	require.NoError(t, c.Toggle("flight-business"))
	require.NoError(t, c.ChangeQuantity("activity-snorkeling", 3))
	toPayment(t, c)
	fillCardPayment(t, c)

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"cvv"`)

	restored, err := Restore(raw)
	require.NoError(t, err)
	assert.Equal(t, c.ID(), restored.ID())
	assert.Equal(t, d.StepPayment, restored.Step())
	assert.Equal(t, c.Totals(), restored.Totals())
	assert.Equal(t, c.TravelerData(), restored.TravelerData())
	assert.Equal(t, "Maria Santos", restored.PaymentView().CardName)
	assert.False(t, restored.PaymentView().HasCVV)

	// the restored selector still reports to the controller
	require.NoError(t, restored.Back())
	require.NoError(t, restored.Back())
	require.NoError(t, restored.Back())
	require.NoError(t, restored.Toggle("flight-economy"))
	assert.Equal(t, int64(3*1200), restored.CustomizationTotal())
}

func TestRestore_RejectsCorruptState(t *testing.T) {
	_, err := Restore([]byte(`{"id":"x","step":9,"travelers":0}`))
	assert.Error(t, err)

	_, err = Restore([]byte(`{"id":"x","step":1,"travelers":2,"traveler_data":[{}]}`))
	assert.Error(t, err)
}
