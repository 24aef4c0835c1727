package domain

import "fmt"

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "credit_card"
	MethodDebitCard  PaymentMethod = "debit_card"
	MethodGCash      PaymentMethod = "gcash"
	MethodPayMaya    PaymentMethod = "paymaya"
)

// PaymentMethodInfo describes a method for display.
type PaymentMethodInfo struct {
	Method      PaymentMethod `json:"method"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
}

var PaymentMethods = []PaymentMethodInfo{
	{MethodCreditCard, "Credit Card", "Visa, Mastercard, JCB"},
	{MethodDebitCard, "Debit Card", "Visa, Mastercard"},
	{MethodGCash, "GCash", "Pay with your GCash wallet"},
	{MethodPayMaya, "PayMaya", "Pay with your PayMaya wallet"},
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.IsCard() && !m.IsEWallet() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownPaymentMethod)
	}
	return m, nil
}

func (m PaymentMethod) IsCard() bool {
	return m == MethodCreditCard || m == MethodDebitCard
}

func (m PaymentMethod) IsEWallet() bool {
	return m == MethodGCash || m == MethodPayMaya
}

// Kind names the required-field set of the method.
func (m PaymentMethod) Kind() string {
	if m.IsEWallet() {
		return "e-wallet"
	}
	return "card"
}

const DefaultBillingCountry = "Philippines"

var BillingCountries = []string{"Philippines", "USA", "Singapore", "Japan"}

type BillingAddress struct {
	Street     string `json:"billingAddress" validate:"required"`
	City       string `json:"billingCity" validate:"required"`
	PostalCode string `json:"billingZip" validate:"required"`
	Country    string `json:"billingCountry" validate:"required,oneof=Philippines USA Singapore Japan"`
}

// PaymentDetails is the method-specific part of a payment. It is one of
// CardPayment or EWalletPayment.
type PaymentDetails interface {
	PaymentMethod() PaymentMethod
	isPaymentDetails()
}

type CardPayment struct {
	Method         PaymentMethod `json:"method"`
	CardholderName string        `json:"cardName" validate:"required"`
	CardNumber     string        `json:"cardNumber" validate:"required"` // digits only
	Expiry         string        `json:"expiryDate" validate:"required"`
	CVV            string        `json:"-" validate:"required"`
}

func (c CardPayment) PaymentMethod() PaymentMethod { return c.Method }
func (CardPayment) isPaymentDetails()              {}

// Last4 returns the trailing digits of the card number.
func (c CardPayment) Last4() string {
	if len(c.CardNumber) <= 4 {
		return c.CardNumber
	}
	return c.CardNumber[len(c.CardNumber)-4:]
}

type EWalletPayment struct {
	Method       PaymentMethod `json:"method"`
	MobileNumber string        `json:"mobileNumber" validate:"required"`
	AccountName  string        `json:"accountName" validate:"required"`
}

func (e EWalletPayment) PaymentMethod() PaymentMethod { return e.Method }
func (EWalletPayment) isPaymentDetails()              {}

// PaymentData is a validated payment carrying only the active method's fields.
type PaymentData struct {
	Details  PaymentDetails `json:"details"`
	Billing  BillingAddress `json:"billing"`
	SaveCard bool           `json:"saveCard"`
}

func (p PaymentData) Method() PaymentMethod {
	if p.Details == nil {
		return ""
	}
	return p.Details.PaymentMethod()
}
