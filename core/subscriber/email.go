package subscriber

import "regexp"

// emailRegex is a simple regex for validating email addresses.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is a validated subscriber email address.
type Email string

// NewEmail validates and returns a subscriber email address.
func NewEmail(value string) (Email, error) {
	if !emailRegex.MatchString(value) {
		return "", ErrInvalidEmail
	}
	return Email(value), nil
}

// String returns the underlying address.
func (e Email) String() string { return string(e) }
