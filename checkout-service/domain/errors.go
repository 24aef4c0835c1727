package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// ValidationError lists the missing or invalid fields of one form. Scope
// names the field set that is incomplete ("travelers", "card", "e-wallet").
type ValidationError struct {
	Scope    string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Scope, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
