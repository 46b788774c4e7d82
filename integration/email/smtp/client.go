package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/newsletter/core/email"
)

// Client implements the EmailSender interface using standard SMTP protocol.
// Supports multiple TLS modes (STARTTLS, TLS, plain) and is safe for
// concurrent use.
type Client struct {
	config Config
	auth   smtp.Auth
}

// New creates an SMTP-backed email sender.
// All configuration fields are required for runtime operation to ensure
// explicit configuration and avoid silent failures in production.
func New(cfg Config) (email.EmailSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: Host is required", email.ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: Port must be between 1 and 65535", email.ErrInvalidConfig)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("%w: Username is required", email.ErrInvalidConfig)
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("%w: Password is required", email.ErrInvalidConfig)
	}
	if cfg.TLSMode != "starttls" && cfg.TLSMode != "tls" && cfg.TLSMode != "plain" {
		return nil, fmt.Errorf("%w: TLSMode must be starttls, tls, or plain", email.ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" || !isValidEmail(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", email.ErrInvalidConfig)
	}
	if cfg.SupportEmail == "" || !isValidEmail(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", email.ErrInvalidConfig)
	}

	return &Client{
		config: cfg,
		auth:   smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}, nil
}

// MustNewClient creates an SMTP client that panics on invalid config.
// Fails fast during initialization rather than allowing a broken service
// to start.
func MustNewClient(cfg Config) email.EmailSender {
	client, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail implements EmailSender using SMTP protocol.
// Supports STARTTLS, TLS, and plain text connections based on configuration.
func (c *Client) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}

	if err := params.Validate(); err != nil {
		return err
	}

	message, err := c.buildMessage(params)
	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}

	serverAddr := net.JoinHostPort(c.config.Host, strconv.Itoa(c.config.Port))

	switch c.config.TLSMode {
	case "tls":
		err = c.sendWithTLS(serverAddr, params.SendTo, message)
	case "starttls":
		err = c.sendWithSTARTTLS(serverAddr, params.SendTo, message)
	case "plain":
		err = c.sendPlain(serverAddr, params.SendTo, message)
	}

	if err != nil {
		return errors.Join(email.ErrFailedToSendEmail, err)
	}

	return nil
}

// buildMessage creates the MIME-formatted email message. With both bodies
// present the result is multipart/alternative with the plain-text part
// first, per RFC 2046 ordering from least to most preferred.
func (c *Client) buildMessage(params email.SendEmailParams) ([]byte, error) {
	var message strings.Builder

	writeHeader := func(key, value string) {
		message.WriteString(key)
		message.WriteString(": ")
		message.WriteString(value)
		message.WriteString("\r\n")
	}

	writeHeader("From", c.config.SenderEmail)
	writeHeader("To", params.SendTo)
	writeHeader("Reply-To", c.config.SupportEmail)
	writeHeader("Subject", params.Subject)
	writeHeader("Date", time.Now().Format(time.RFC1123Z))
	writeHeader("Message-ID", fmt.Sprintf("<%d.%s@%s>",
		time.Now().UnixNano(),
		strings.ReplaceAll(params.Tag, " ", "_"),
		c.config.Host,
	))
	writeHeader("MIME-Version", "1.0")

	if params.BodyText == "" {
		writeHeader("Content-Type", `text/html; charset="UTF-8"`)
		message.WriteString("\r\n")
		message.WriteString(params.BodyHTML)
		return []byte(message.String()), nil
	}

	var body strings.Builder
	mw := multipart.NewWriter(&body)
	writeHeader("Content-Type", `multipart/alternative; boundary="`+mw.Boundary()+`"`)
	message.WriteString("\r\n")

	textPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/plain; charset="UTF-8"`},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(params.BodyText)); err != nil {
		return nil, err
	}

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/html; charset="UTF-8"`},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(params.BodyHTML)); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	message.WriteString(body.String())
	return []byte(message.String()), nil
}

// sendWithTLS sends email using direct TLS connection.
func (c *Client) sendWithTLS(serverAddr, recipient string, message []byte) error {
	tlsConfig := &tls.Config{
		ServerName: c.config.Host,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server with TLS: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, c.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	return c.performSMTPTransaction(client, recipient, message)
}

// sendWithSTARTTLS sends email using STARTTLS upgrade.
func (c *Client) sendWithSTARTTLS(serverAddr, recipient string, message []byte) error {
	client, err := smtp.Dial(serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = client.Close() }()

	tlsConfig := &tls.Config{
		ServerName: c.config.Host,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	return c.performSMTPTransaction(client, recipient, message)
}

// sendPlain sends email without encryption.
func (c *Client) sendPlain(serverAddr, recipient string, message []byte) error {
	client, err := smtp.Dial(serverAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = client.Close() }()

	return c.performSMTPTransaction(client, recipient, message)
}

// performSMTPTransaction performs the actual SMTP transaction.
func (c *Client) performSMTPTransaction(client *smtp.Client, recipient string, message []byte) error {
	if err := client.Auth(c.auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(c.config.SenderEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err := client.Rcpt(recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err := writer.Write(message); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// Quit errors are non-fatal as the message was already sent.
	// Some servers close the connection immediately after DATA.
	_ = client.Quit()

	return nil
}

// emailRegex is a simple regex for validating email addresses.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// isValidEmail checks if the provided string is a valid email address.
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
