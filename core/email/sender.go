package email

import (
	"context"
	"fmt"
	"regexp"
)

// EmailSender abstracts outbound email delivery. Implementations must be safe
// for concurrent use; the broadcast flow sends to many recipients through a
// single shared sender.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams carries a single outbound message. BodyHTML is required;
// BodyText, when present, is delivered as the plain-text alternative.
type SendEmailParams struct {
	SendTo   string
	Subject  string
	BodyHTML string
	BodyText string
	Tag      string
}

// emailRegex is a simple regex for validating email addresses.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate checks that the params are complete enough to attempt delivery.
func (p SendEmailParams) Validate() error {
	if p.SendTo == "" || !emailRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if p.Subject == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}
	return nil
}
