// Package payment holds the payment step of the checkout: the form with its
// method branches, the gateway seam and the processor that calls it.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	d "github.com/fjod/go_travel/checkout-service/domain"
)

type cardFields struct {
	Name   string `json:"cardName"`
	Number string `json:"cardNumber"` // digits only
	Expiry string `json:"expiryDate"`
	CVV    string `json:"-"`
}

type eWalletFields struct {
	MobileNumber string `json:"mobileNumber"`
	AccountName  string `json:"accountName"`
}

// Form is the payment step state. Fields of every method are kept when the
// method changes; only the active method's fields are validated and sent.
// A Form is safe for concurrent use and admits one submission at a time.
type Form struct {
	mu         sync.Mutex
	method     d.PaymentMethod
	card       cardFields
	eWallet    eWalletFields
	billing    d.BillingAddress
	saveCard   bool
	processing bool
	lastError  string
}

func NewForm() *Form {
	return &Form{
		method:  d.MethodCreditCard,
		billing: d.BillingAddress{Country: d.DefaultBillingCountry},
	}
}

// FormView is the client-facing rendering. It never contains the CVV or
// the full card number.
type FormView struct {
	Method       d.PaymentMethod  `json:"method"`
	Kind         string           `json:"kind"`
	CardName     string           `json:"cardName,omitempty"`
	CardNumber   string           `json:"cardNumber,omitempty"`
	ExpiryDate   string           `json:"expiryDate,omitempty"`
	HasCVV       bool             `json:"hasCvv"`
	MobileNumber string           `json:"mobileNumber,omitempty"`
	AccountName  string           `json:"accountName,omitempty"`
	Billing      d.BillingAddress `json:"billing"`
	SaveCard     bool             `json:"saveCard"`
	Processing   bool             `json:"processing"`
	LastError    string           `json:"lastError,omitempty"`
}

func (f *Form) View() FormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormView{
		Method:       f.method,
		Kind:         f.method.Kind(),
		CardName:     f.card.Name,
		CardNumber:   MaskCardNumber(f.card.Number),
		ExpiryDate:   f.card.Expiry,
		HasCVV:       f.card.CVV != "",
		MobileNumber: f.eWallet.MobileNumber,
		AccountName:  f.eWallet.AccountName,
		Billing:      f.billing,
		SaveCard:     f.saveCard,
		Processing:   f.processing,
		LastError:    f.lastError,
	}
}

func (f *Form) Method() d.PaymentMethod {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.method
}

func (f *Form) Processing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processing
}

// CardNumberDisplay is the stored card number grouped by four.
func (f *Form) CardNumberDisplay() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormatCardNumber(f.card.Number)
}

func (f *Form) SetMethod(m d.PaymentMethod) error {
	if _, err := d.ParsePaymentMethod(string(m)); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processing {
		return ErrPaymentInProgress
	}
	f.method = m
	return nil
}

func (f *Form) SetSaveCard(save bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processing {
		return ErrPaymentInProgress
	}
	f.saveCard = save
	return nil
}

// UpdateField stores one input, applying the same normalization a client
// applies while typing.
func (f *Form) UpdateField(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processing {
		return ErrPaymentInProgress
	}

	switch field {
	case "cardName":
		f.card.Name = value
	case "cardNumber":
		f.card.Number = Digits(value, maxCardDigits)
	case "expiryDate":
		f.card.Expiry = FormatExpiry(value)
	case "cvv":
		f.card.CVV = Digits(value, maxCVVDigits)
	case "mobileNumber":
		f.eWallet.MobileNumber = FormatMobile(value)
	case "accountName":
		f.eWallet.AccountName = value
	case "billingAddress":
		f.billing.Street = value
	case "billingCity":
		f.billing.City = value
	case "billingZip":
		f.billing.PostalCode = Digits(value, 0)
	case "billingCountry":
		if !slices.Contains(d.BillingCountries, value) {
			return fmt.Errorf("%q: %w", value, ErrUnsupportedCountry)
		}
		f.billing.Country = value
	default:
		return fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
	return nil
}

// Validate assembles the payment for the active method or reports the
// incomplete field set as a *d.ValidationError scoped to the method kind.
func (f *Form) Validate() (d.PaymentData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validate()
}

func (f *Form) validate() (d.PaymentData, error) {
	var details d.PaymentDetails
	if f.method.IsEWallet() {
		details = d.EWalletPayment{
			Method:       f.method,
			MobileNumber: f.eWallet.MobileNumber,
			AccountName:  f.eWallet.AccountName,
		}
	} else {
		details = d.CardPayment{
			Method:         f.method,
			CardholderName: f.card.Name,
			CardNumber:     f.card.Number,
			Expiry:         f.card.Expiry,
			CVV:            f.card.CVV,
		}
	}

	// The method scope wins when both sets are incomplete; billing problems
	// are listed after the method's own.
	problems := d.FieldProblems(details)
	scope := f.method.Kind()
	if len(problems) == 0 {
		scope = "billing"
	}
	problems = append(problems, d.FieldProblems(f.billing)...)
	if len(problems) > 0 {
		return d.PaymentData{}, &d.ValidationError{Scope: scope, Problems: problems}
	}

	return d.PaymentData{Details: details, Billing: f.billing, SaveCard: f.saveCard}, nil
}

// Begin validates the form and marks it processing. A second Begin before
// Finish fails with ErrPaymentInProgress.
func (f *Form) Begin() (d.PaymentData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processing {
		return d.PaymentData{}, ErrPaymentInProgress
	}
	data, err := f.validate()
	if err != nil {
		return d.PaymentData{}, err
	}
	f.processing = true
	f.lastError = ""
	return data, nil
}

// Finish ends processing. A failed attempt keeps every entered field except
// the CVV.
func (f *Form) Finish(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processing = false
	if err != nil {
		f.card.CVV = ""
		f.lastError = err.Error()
		return
	}
	f.lastError = ""
}

// Submit runs one complete attempt against gw: Begin, Authorize, Finish,
// then onComplete with the assembled data and receipt.
func (f *Form) Submit(ctx context.Context, gw Gateway, reference string, amount int64,
	onComplete func(d.PaymentData, Receipt)) error {
	data, err := f.Begin()
	if err != nil {
		return err
	}

	receipt, err := gw.Authorize(ctx, Charge{
		Reference: reference,
		Amount:    amount,
		Currency:  d.Currency,
		Payment:   data,
	})
	f.Finish(err)
	if err != nil {
		return err
	}

	if onComplete != nil {
		onComplete(data, receipt)
	}
	return nil
}

// formState is the persisted shape of a Form. The CVV is not part of it.
type formState struct {
	Method     d.PaymentMethod  `json:"method"`
	Card       cardFields       `json:"card"`
	EWallet    eWalletFields    `json:"eWallet"`
	Billing    d.BillingAddress `json:"billing"`
	SaveCard   bool             `json:"saveCard"`
	Processing bool             `json:"processing"`
	LastError  string           `json:"lastError,omitempty"`
}

func (f *Form) MarshalJSON() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return json.Marshal(formState{
		Method:     f.method,
		Card:       f.card,
		EWallet:    f.eWallet,
		Billing:    f.billing,
		SaveCard:   f.saveCard,
		Processing: f.processing,
		LastError:  f.lastError,
	})
}

func (f *Form) UnmarshalJSON(data []byte) error {
	var st formState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.method = st.Method
	f.card = st.Card
	f.eWallet = st.EWallet
	f.billing = st.Billing
	f.saveCard = st.SaveCard
	f.processing = st.Processing
	f.lastError = st.LastError
	return nil
}
