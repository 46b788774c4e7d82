package smtp_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/core/email"
	"github.com/dmitrymomot/newsletter/integration/email/smtp"
)

func validConfig() smtp.Config {
	return smtp.Config{
		Host:         "smtp.example.com",
		Port:         587,
		Username:     "newsletter@example.com",
		Password:     "password",
		TLSMode:      "starttls",
		SenderEmail:  "newsletter@example.com",
		SupportEmail: "support@example.com",
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*smtp.Config)
		errMsg string
	}{
		{
			name:   "valid config",
			mutate: func(cfg *smtp.Config) {},
		},
		{
			name:   "empty host",
			mutate: func(cfg *smtp.Config) { cfg.Host = "" },
			errMsg: "Host is required",
		},
		{
			name:   "zero port",
			mutate: func(cfg *smtp.Config) { cfg.Port = 0 },
			errMsg: "Port must be between 1 and 65535",
		},
		{
			name:   "port out of range",
			mutate: func(cfg *smtp.Config) { cfg.Port = 70000 },
			errMsg: "Port must be between 1 and 65535",
		},
		{
			name:   "empty username",
			mutate: func(cfg *smtp.Config) { cfg.Username = "" },
			errMsg: "Username is required",
		},
		{
			name:   "empty password",
			mutate: func(cfg *smtp.Config) { cfg.Password = "" },
			errMsg: "Password is required",
		},
		{
			name:   "unknown tls mode",
			mutate: func(cfg *smtp.Config) { cfg.TLSMode = "ssl" },
			errMsg: "TLSMode must be starttls, tls, or plain",
		},
		{
			name:   "tls mode tls",
			mutate: func(cfg *smtp.Config) { cfg.TLSMode = "tls" },
		},
		{
			name:   "tls mode plain",
			mutate: func(cfg *smtp.Config) { cfg.TLSMode = "plain" },
		},
		{
			name:   "invalid sender email",
			mutate: func(cfg *smtp.Config) { cfg.SenderEmail = "not-an-email" },
			errMsg: "SenderEmail must be a valid email address",
		},
		{
			name:   "invalid support email",
			mutate: func(cfg *smtp.Config) { cfg.SupportEmail = "support@" },
			errMsg: "SupportEmail must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			client, err := smtp.New(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				assert.NotNil(t, client)
				return
			}
			require.Error(t, err)
			assert.Nil(t, client)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestMustNewClient(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() {
			client := smtp.MustNewClient(validConfig())
			assert.NotNil(t, client)
		})
	})

	t.Run("invalid config panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			smtp.MustNewClient(smtp.Config{})
		})
	})
}

func TestSendEmail_ParamValidation(t *testing.T) {
	t.Parallel()

	client, err := smtp.New(validConfig())
	require.NoError(t, err)

	ctx := context.Background()

	tests := []struct {
		name   string
		params email.SendEmailParams
	}{
		{
			name: "empty recipient",
			params: email.SendEmailParams{
				Subject:  "Test",
				BodyHTML: "<p>Test</p>",
			},
		},
		{
			name: "malformed recipient",
			params: email.SendEmailParams{
				SendTo:   "invalid-email",
				Subject:  "Test",
				BodyHTML: "<p>Test</p>",
			},
		},
		{
			name: "empty subject",
			params: email.SendEmailParams{
				SendTo:   "subscriber@example.com",
				BodyHTML: "<p>Test</p>",
			},
		},
		{
			name: "empty html body",
			params: email.SendEmailParams{
				SendTo:  "subscriber@example.com",
				Subject: "Test",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := client.SendEmail(ctx, tt.params)
			assert.ErrorIs(t, err, email.ErrInvalidParams)
		})
	}
}

func TestSendEmail_ConnectionError(t *testing.T) {
	t.Parallel()

	// Reserve a port and release it so the dial below hits a closed socket.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := validConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	cfg.TLSMode = "plain"

	client, err := smtp.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = client.SendEmail(ctx, email.SendEmailParams{
		SendTo:   "subscriber@example.com",
		Subject:  "Issue #1",
		BodyHTML: "<p>news</p>",
		BodyText: "news",
		Tag:      "newsletter",
	})
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.Contains(t, err.Error(), "failed to connect to SMTP server")
}

func TestSendEmail_CancelledContext(t *testing.T) {
	t.Parallel()

	client, err := smtp.New(validConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = client.SendEmail(ctx, email.SendEmailParams{
		SendTo:   "subscriber@example.com",
		Subject:  "Issue #1",
		BodyHTML: "<p>news</p>",
	})
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.ErrorIs(t, err, context.Canceled)
}
