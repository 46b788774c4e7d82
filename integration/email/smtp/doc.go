// Package smtp provides an SMTP-based implementation of the
// email.EmailSender interface.
//
// Messages with both an HTML and a plain-text body are sent as
// multipart/alternative with the text part first; HTML-only messages go out
// as a single text/html part. STARTTLS, direct TLS, and plain connections
// are supported, selected by the TLSMode config field.
//
// Basic usage:
//
//	cfg := smtp.Config{
//		Host:         "smtp.example.com",
//		Port:         587,
//		Username:     "newsletter@example.com",
//		Password:     "app-password",
//		TLSMode:      "starttls",
//		SenderEmail:  "newsletter@example.com",
//		SupportEmail: "support@example.com",
//	}
//
//	sender, err := smtp.New(cfg)
//	if err != nil {
//		// Handle configuration error
//	}
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "subscriber@example.com",
//		Subject:  "Welcome!",
//		BodyHTML: "<p>Click the link to confirm.</p>",
//		BodyText: "Visit the link to confirm.",
//		Tag:      "subscription-confirmation",
//	})
//
// # TLS Modes
//
// Three TLS modes are supported:
//
//   - "starttls": Start with plain connection, upgrade to TLS (recommended, port 587)
//   - "tls": Direct TLS connection (port 465)
//   - "plain": No encryption (development only, port 25)
//
// All config fields are validated during client creation; New returns
// email.ErrInvalidConfig on the first problem, MustNewClient panics instead.
package smtp
