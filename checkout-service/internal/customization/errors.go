package customization

import "errors"

var (
	ErrUnknownOption   = errors.New("unknown customization option")
	ErrNotQuantifiable = errors.New("option does not take a quantity")
)
