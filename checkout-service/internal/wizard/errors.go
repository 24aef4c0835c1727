package wizard

import "errors"

var (
	ErrIllegalTransition = errors.New("illegal transition of checkout step")
	ErrWrongStep         = errors.New("action not available at the current step")
	ErrNoPreviousStep    = errors.New("no previous step")
	ErrAlreadyConfirmed  = errors.New("checkout already confirmed")
	ErrPaymentRequired   = errors.New("payment step advances only by submitting payment")
	ErrNoPaymentInFlight = errors.New("no payment is being processed")
	ErrInvalidTravelers  = errors.New("traveler count must be between 1 and 20")
)
