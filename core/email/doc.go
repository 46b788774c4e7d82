// Package email defines the outbound email contract used across the
// newsletter service and a development sender for local work.
//
// The EmailSender interface is the single seam between the subscription and
// broadcast flows and the actual delivery mechanism; production
// implementations live under integration/email (Postmark, SMTP), while
// DevSender writes messages to disk so confirmation links can be followed
// without a mail provider.
//
// Newsletter content is always carried in both HTML and plain-text form, so
// SendEmailParams requires BodyHTML and accepts BodyText for the
// multipart/alternative part.
package email
