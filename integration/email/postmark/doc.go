// Package postmark implements the email.EmailSender interface using
// Postmark's transactional email API.
//
// The client sends both HTML and plain-text bodies when both are supplied,
// sets Reply-To to the configured support address, and enables open tracking
// plus HTML-only link tracking. Postmark API errors and non-zero response
// error codes are wrapped with email.ErrFailedToSendEmail so callers can
// classify delivery failures without depending on this package.
//
// # Configuration
//
// Configuration comes from the environment via the Config struct:
//
//	type Config struct {
//		PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
//		PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
//		SenderEmail          string `env:"SENDER_EMAIL,required"`
//		SupportEmail         string `env:"SUPPORT_EMAIL,required"`
//	}
//
// New validates every field and returns email.ErrInvalidConfig on the first
// problem; MustNewClient panics instead, for wiring done at startup:
//
//	sender := postmark.MustNewClient(cfg)
//
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "subscriber@example.com",
//		Subject:  "Welcome!",
//		BodyHTML: "<p>Click the link to confirm.</p>",
//		BodyText: "Visit the link to confirm.",
//		Tag:      "subscription-confirmation",
//	})
//
// For local development without Postmark credentials use email.DevSender,
// which writes messages to disk instead of sending them.
package postmark
