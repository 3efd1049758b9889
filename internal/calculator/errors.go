package calculator

import "errors"

var (
	// ErrInvalidInput marks a malformed bill snapshot or value: a negative
	// price, a zero quantity, a share outside [0, 1] and so on.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidOperation marks a split operation that has no meaning in the
	// current state, such as splitting among zero participants.
	ErrInvalidOperation = errors.New("invalid operation")
)
