package subscription

import "errors"

var (
	// ErrStoreFailure wraps infrastructure or transaction failures from the
	// underlying store. Retriable only by the caller re-submitting.
	ErrStoreFailure = errors.New("subscription store failure")

	// ErrDuplicateSubscriber indicates the email or token already exists.
	ErrDuplicateSubscriber = errors.New("subscriber already exists")

	// ErrInvalidCredentials is the single undifferentiated authentication
	// failure: it never reveals whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConfirmationEmail indicates the subscriber was stored but the
	// confirmation email could not be delivered.
	ErrConfirmationEmail = errors.New("failed to send confirmation email")
)
