package domain

import "errors"

// Sentinel errors for the inventory and restock engine. Callers match with
// errors.Is; the HTTP layer maps them to status codes.
var (
	// ErrValidation covers bad input: negative quantities, stock updates that
	// would drive current_stock below zero, malformed status labels.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound is returned for unknown item or request ids.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateOpenRequest is returned when a restock request is created
	// for an item that already has a pending or approved request.
	ErrDuplicateOpenRequest = errors.New("an open restock request already exists for this item")

	// ErrInvalidTransition is returned when a request status change breaks
	// the pending -> approved -> fulfilled / pending -> declined machine.
	ErrInvalidTransition = errors.New("invalid restock request status transition")
)
