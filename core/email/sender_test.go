package email_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/newsletter/core/email"
)

func TestSendEmailParamsValidate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "ursula@example.com",
		Subject:  "Welcome!",
		BodyHTML: "<p>hi</p>",
		BodyText: "hi",
	}

	t.Run("valid params", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid.Validate())
	})

	t.Run("text body is optional", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.BodyText = ""
		assert.NoError(t, p.Validate())
	})

	t.Run("invalid recipient", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.SendTo = "not-an-email"
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("missing subject", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.Subject = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})

	t.Run("missing html body", func(t *testing.T) {
		t.Parallel()
		p := valid
		p.BodyHTML = ""
		assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
	})
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	t.Run("writes html text and metadata files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.SendEmail(context.Background(), email.SendEmailParams{
			SendTo:   "ursula@example.com",
			Subject:  "Welcome!",
			BodyHTML: "<p>Click the link</p>",
			BodyText: "Visit the link",
			Tag:      "subscription-confirmation",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)

		var html, txt, meta bool
		for _, e := range entries {
			switch filepath.Ext(e.Name()) {
			case ".html":
				html = true
			case ".txt":
				txt = true
			case ".json":
				meta = true
			}
			assert.True(t, strings.Contains(e.Name(), "subscription-confirmation"))
		}
		assert.True(t, html, "html body file missing")
		assert.True(t, txt, "text body file missing")
		assert.True(t, meta, "metadata file missing")
	})

	t.Run("rejects invalid params before writing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.SendEmail(context.Background(), email.SendEmailParams{SendTo: "nope"})
		assert.ErrorIs(t, err, email.ErrInvalidParams)

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})
}
