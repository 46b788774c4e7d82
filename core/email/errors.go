package email

import "errors"

var (
	// ErrFailedToSendEmail wraps transport-level delivery failures from any
	// sender implementation.
	ErrFailedToSendEmail = errors.New("failed to send email")

	// ErrInvalidConfig indicates a sender was constructed with incomplete
	// or malformed configuration.
	ErrInvalidConfig = errors.New("invalid email configuration")

	// ErrInvalidParams indicates the message itself is incomplete; see
	// SendEmailParams.Validate.
	ErrInvalidParams = errors.New("invalid email parameters")
)
