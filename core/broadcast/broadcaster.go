package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/newsletter/core/basicauth"
	"github.com/dmitrymomot/newsletter/core/email"
	"github.com/dmitrymomot/newsletter/core/subscriber"
)

// CredentialValidator checks administrator credentials. Satisfied by
// *subscription.Store. Any validation error, infrastructure included, is
// reported to the publisher as the single undifferentiated unauthorized kind.
type CredentialValidator interface {
	ValidateCredentials(ctx context.Context, creds basicauth.Credentials) (uuid.UUID, error)
}

// SubscriberLister supplies the confirmed subscriber list. Satisfied by
// *subscription.Store.
type SubscriberLister interface {
	ConfirmedSubscribers(ctx context.Context) ([]subscriber.Confirmed, error)
}

// Newsletter is one issue to broadcast, pre-rendered in both formats.
type Newsletter struct {
	Title string
	HTML  string
	Text  string
}

// Validate checks the issue is complete enough to dispatch.
func (n Newsletter) Validate() error {
	if n.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidNewsletter)
	}
	if n.HTML == "" || n.Text == "" {
		return fmt.Errorf("%w: both html and text bodies are required", ErrInvalidNewsletter)
	}
	return nil
}

// DeliveryPolicy decides what happens to the remaining recipients after a
// failed send.
type DeliveryPolicy int

const (
	// PolicyAbortOnFirstFailure stops the broadcast at the first failed
	// recipient. The default.
	PolicyAbortOnFirstFailure DeliveryPolicy = iota

	// PolicyBestEffort keeps sending to the remaining recipients and
	// collects every failure in the report.
	PolicyBestEffort
)

// Report summarizes one publish invocation.
type Report struct {
	Attempted int
	Delivered int
	Failures  []Failure
}

// Failure records one recipient the issue could not be delivered to.
type Failure struct {
	Email string
	Err   error
}

// Broadcaster coordinates the publish operation: credential gate, confirmed
// list fetch, per-recipient dispatch.
type Broadcaster struct {
	auth        CredentialValidator
	subscribers SubscriberLister
	sender      email.EmailSender
	policy      DeliveryPolicy
	log         *slog.Logger
}

// Option configures a Broadcaster.
type Option func(*Broadcaster)

// WithPolicy overrides the default abort-on-first-failure delivery policy.
func WithPolicy(policy DeliveryPolicy) Option {
	return func(b *Broadcaster) { b.policy = policy }
}

// WithLogger sets the logger used for publish progress.
func WithLogger(log *slog.Logger) Option {
	return func(b *Broadcaster) { b.log = log }
}

// NewBroadcaster creates a broadcaster over the given collaborators.
func NewBroadcaster(auth CredentialValidator, subscribers SubscriberLister, sender email.EmailSender, opts ...Option) *Broadcaster {
	b := &Broadcaster{
		auth:        auth,
		subscribers: subscribers,
		sender:      sender,
		policy:      PolicyAbortOnFirstFailure,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Publish authenticates the caller from the raw Authorization header value
// and dispatches the issue to every confirmed subscriber in list order.
//
// Authentication runs before anything else: with a malformed header or
// invalid credentials no send is ever attempted and the error wraps
// ErrUnauthorized without revealing which check failed. The returned Report
// is meaningful even on error under the best-effort policy.
func (b *Broadcaster) Publish(ctx context.Context, authorization string, issue Newsletter) (Report, error) {
	creds, err := basicauth.Decode(authorization)
	if err != nil {
		return Report{}, errors.Join(ErrUnauthorized, err)
	}

	adminID, err := b.auth.ValidateCredentials(ctx, creds)
	if err != nil {
		return Report{}, errors.Join(ErrUnauthorized, err)
	}

	if err := issue.Validate(); err != nil {
		return Report{}, err
	}

	confirmed, err := b.subscribers.ConfirmedSubscribers(ctx)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, sub := range confirmed {
		report.Attempted++
		sendErr := b.sender.SendEmail(ctx, email.SendEmailParams{
			SendTo:   sub.Email.String(),
			Subject:  issue.Title,
			BodyHTML: issue.HTML,
			BodyText: issue.Text,
			Tag:      "newsletter",
		})
		if sendErr != nil {
			report.Failures = append(report.Failures, Failure{Email: sub.Email.String(), Err: sendErr})
			b.log.ErrorContext(ctx, "newsletter send failed",
				slog.String("email", sub.Email.String()),
				slog.Any("error", sendErr),
			)
			if b.policy == PolicyAbortOnFirstFailure {
				return report, errors.Join(ErrDeliveryFailed, sendErr)
			}
			continue
		}
		report.Delivered++
	}

	b.log.InfoContext(ctx, "newsletter published",
		slog.String("admin_id", adminID.String()),
		slog.String("title", issue.Title),
		slog.Int("delivered", report.Delivered),
		slog.Int("failed", len(report.Failures)),
	)
	return report, nil
}
