package subscriber

import "errors"

// Validation errors are client-input failures and are never retried.
var (
	// ErrEmptyName indicates the name was empty or whitespace only.
	ErrEmptyName = errors.New("subscriber name is empty")

	// ErrNameTooLong indicates the name exceeds the maximum allowed length.
	ErrNameTooLong = errors.New("subscriber name is longer than 256 characters")

	// ErrForbiddenCharacters indicates the name contains characters that are
	// rejected to keep stored names safe for downstream rendering.
	ErrForbiddenCharacters = errors.New("subscriber name contains forbidden characters")

	// ErrInvalidEmail indicates the value is not shaped like an email address.
	ErrInvalidEmail = errors.New("invalid subscriber email address")
)
