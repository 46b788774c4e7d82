package broadcast

import "errors"

var (
	// ErrUnauthorized is the single authentication failure kind of the
	// publish operation. It covers malformed headers, unknown users, and
	// wrong passwords alike; the boundary layer maps it to access denied.
	ErrUnauthorized = errors.New("unauthorized to publish newsletter")

	// ErrInvalidNewsletter indicates the issue is missing a title or body.
	ErrInvalidNewsletter = errors.New("invalid newsletter content")

	// ErrDeliveryFailed indicates the broadcast was aborted by a failed send
	// under the abort-on-first-failure policy.
	ErrDeliveryFailed = errors.New("newsletter delivery failed")
)
