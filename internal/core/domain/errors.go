package domain

import "errors"

var (
	// ErrPermissionDenied is returned when an action is attempted by an account
	// whose role does not allow it.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrOutOfStock is returned when a cart holds more copies of a game than
	// the catalog has in stock.
	ErrOutOfStock = errors.New("out of stock")
	// ErrAccountNotFound is returned when looking up a non-existent account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidInput is returned for blank required fields, malformed numbers
	// and unrecognized enum tokens.
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrNotLoggedIn        = errors.New("no user logged in")
	ErrNotSessionOwner    = errors.New("account is not the logged in user")
	ErrGameNotFound       = errors.New("game not found")
	ErrCartEmpty          = errors.New("cart is empty")
)
