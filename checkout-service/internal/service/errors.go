package service

import "errors"

var (
	ErrCVVNotStored   = errors.New("cvv is accepted only together with payment submission")
	ErrInvalidRequest = errors.New("invalid checkout request")
)
