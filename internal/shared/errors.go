package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrInvalidResponse    = fmt.Errorf("invalid API response")
	ErrEmptyResults       = fmt.Errorf("Empty results from API")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Cache lookups
	ErrUserNotFound    = fmt.Errorf("user not found")
	ErrAddressNotFound = fmt.Errorf("address not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrInvalidSize     = fmt.Errorf("Invalid size")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// lookupError carries the message shown to users while still matching its sentinel with [errors.Is].
type lookupError struct {
	kind error
	msg  string
}

func (e *lookupError) Error() string { return e.msg }
func (e *lookupError) Unwrap() error { return e.kind }

// UserNotFound returns an error matching [ErrUserNotFound].
func UserNotFound(userID string) error {
	return &lookupError{kind: ErrUserNotFound, msg: fmt.Sprintf("Can't find user with user id %s", userID)}
}

// AddressNotFound returns an error matching [ErrAddressNotFound].
func AddressNotFound(userID string) error {
	return &lookupError{kind: ErrAddressNotFound, msg: fmt.Sprintf("Can't find address with user id %s", userID)}
}
