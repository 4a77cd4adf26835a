package domain

import "errors"

var (
	// ErrRateNotFound is returned when a rate id is not in the catalog.
	ErrRateNotFound = errors.New("rate not found")
	// ErrSessionNotFound is returned when a calculator session id is unknown.
	ErrSessionNotFound = errors.New("calculator session not found")
	// ErrPaymentMethodNotFound is returned when a payment method id is unknown.
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	// ErrInvalidPhoneNumber is returned for phone numbers that are not valid
	// Venezuelan mobile numbers.
	ErrInvalidPhoneNumber = errors.New("invalid venezuelan mobile number")
	// ErrUnknownBank is returned when a bank name is not in the bank table.
	ErrUnknownBank = errors.New("unknown bank")
	// ErrInvalidCustomRate is returned when a custom rate definition is
	// missing its name or formula.
	ErrInvalidCustomRate = errors.New("invalid custom rate definition")
	// ErrSystemRate is returned when a mutation targets a fixed system rate.
	ErrSystemRate = errors.New("system rates cannot be modified")
)
