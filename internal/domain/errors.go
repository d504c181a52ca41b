package domain

import "errors"

// Error taxonomy returned by services. The HTTP layer maps these to status
// codes; services never swallow them.
var (
	ErrUnauthorized  = errors.New("acting user lacks the required relationship to the entity")
	ErrInvalidState  = errors.New("transition is illegal from the current state")
	ErrRentalExpired = errors.New("rental end date has already passed")
	ErrValidation    = errors.New("invalid input")
	ErrNotFound      = errors.New("entity not found")
	ErrConflict      = errors.New("conflicting concurrent update")
)
