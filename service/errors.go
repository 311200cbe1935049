package service

import "errors"

// Client errors. Their messages are shown to the caller as-is; anything not
// in this list is a server error.
var (
	ErrMissingParameter      = errors.New("One or more required parameters is missing")
	ErrInvalidParameter      = errors.New("One or more parameters is invalid")
	ErrUserNotFound          = errors.New("User does not exist")
	ErrSellerNotFound        = errors.New("Seller does not exist")
	ErrUserAlreadyExists     = errors.New("User already exists")
	ErrInvalidPasswordFormat = errors.New("Password format invalid")
	ErrIncorrectPassword     = errors.New("Incorrect Password")
	ErrNotLoggedIn           = errors.New("User is not logged in")
	ErrItemNotFound          = errors.New("Item does not exist")
	ErrInsufficientStock     = errors.New("Quantity of item in cart exceeds quantity in stock")
	ErrInsufficientCredits   = errors.New("Insufficient credits")
)

var clientErrors = []error{
	ErrMissingParameter,
	ErrInvalidParameter,
	ErrUserNotFound,
	ErrSellerNotFound,
	ErrUserAlreadyExists,
	ErrInvalidPasswordFormat,
	ErrIncorrectPassword,
	ErrNotLoggedIn,
	ErrItemNotFound,
	ErrInsufficientStock,
	ErrInsufficientCredits,
}

// IsClientError reports whether err is a validation or business-rule failure
// rather than an infrastructure failure.
func IsClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
