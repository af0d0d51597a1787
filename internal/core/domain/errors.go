package domain

import "errors"

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Wizard errors
var (
	ErrSessionNotFound = errors.New("wizard session not found")
	ErrUnknownItem     = errors.New("unknown catalog item")
	ErrEmptyOrder      = errors.New("order total must be greater than zero")
	ErrInvalidDelivery = errors.New("invalid delivery mode")
	ErrInvalidPayment  = errors.New("invalid payment type")
)
