package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/dmitrymomot/newsletter/core/email"
	"github.com/dmitrymomot/newsletter/core/subscriber"
)

// SubscriberStore is the slice of Store the intake flow needs.
type SubscriberStore interface {
	CreateSubscriber(ctx context.Context, sub subscriber.Subscriber, token string) error
	ConfirmSubscriber(ctx context.Context, token string) error
}

// Service drives the subscription intake flow: validate, generate a token,
// persist atomically, send the confirmation email with the redeem link.
type Service struct {
	store   SubscriberStore
	sender  email.EmailSender
	baseURL *url.URL
	log     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for intake flow progress.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// NewService creates the intake service. baseURL is the public address of the
// service, used to build confirmation links.
func NewService(store SubscriberStore, sender email.EmailSender, baseURL string, opts ...ServiceOption) (*Service, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	s := &Service{
		store:   store,
		sender:  sender,
		baseURL: parsed,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Subscribe validates the inbound pair, stores the pending subscriber with a
// fresh confirmation token, and mails the confirmation link. Validation
// errors are client-input failures; a stored subscriber whose email could not
// be sent surfaces as ErrConfirmationEmail.
func (s *Service) Subscribe(ctx context.Context, name, emailAddr string) error {
	sub, err := subscriber.New(name, emailAddr)
	if err != nil {
		return err
	}

	token, err := NewToken()
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	if err := s.store.CreateSubscriber(ctx, sub, token); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "subscriber created", slog.String("email", sub.Email.String()))

	if err := s.sendConfirmationEmail(ctx, sub, token); err != nil {
		return errors.Join(ErrConfirmationEmail, err)
	}
	return nil
}

// Confirm redeems a confirmation token. Unknown or spent tokens are a silent
// no-op by design; see the package documentation.
func (s *Service) Confirm(ctx context.Context, token string) error {
	return s.store.ConfirmSubscriber(ctx, token)
}

func (s *Service) sendConfirmationEmail(ctx context.Context, sub subscriber.Subscriber, token string) error {
	link := s.confirmationLink(token)

	return s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:  sub.Email.String(),
		Subject: "Welcome!",
		BodyHTML: fmt.Sprintf(
			`Welcome to our newsletter!<br />Click <a href=%q>here</a> to confirm your subscription.`,
			link,
		),
		BodyText: fmt.Sprintf(
			"Welcome to our newsletter!\nVisit %s to confirm your subscription.",
			link,
		),
		Tag: "subscription-confirmation",
	})
}

// confirmationLink builds {base_url}/subscriptions/confirm?token={token}.
func (s *Service) confirmationLink(token string) string {
	link := s.baseURL.JoinPath("subscriptions", "confirm")
	q := url.Values{"token": {token}}
	link.RawQuery = q.Encode()
	return link.String()
}
