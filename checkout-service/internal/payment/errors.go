package payment

import (
	"errors"
	"fmt"
)

var (
	ErrPaymentInProgress  = errors.New("payment is already being processed")
	ErrPaymentRejected    = errors.New("payment rejected by gateway")
	ErrPaymentTimeout     = errors.New("payment gateway timed out")
	ErrPaymentCancelled   = errors.New("payment cancelled")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrUnknownField       = errors.New("unknown payment field")
	ErrUnsupportedCountry = errors.New("unsupported billing country")
)

// RejectionError is a definitive decline from the gateway. It is shown to
// the user and never retried.
type RejectionError struct {
	Code   Refusal
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("payment rejected (%s): %s", e.Code, e.Reason)
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrPaymentRejected
}
