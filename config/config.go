// Package config defines the application-level configuration for the
// newsletter service. Provider-specific settings (Postmark, SMTP) live with
// their integrations and are loaded separately, only when the provider is
// selected.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/newsletter/integration/database/pg"
)

// Email provider names accepted by Config.EmailProvider.
const (
	EmailProviderDev      = "dev"
	EmailProviderPostmark = "postmark"
	EmailProviderSMTP     = "smtp"
)

// Config is the top-level service configuration, parsed from the environment.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	BaseURL         string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Database pg.Config `envPrefix:"DATABASE_"`

	// EmailProvider selects the confirmation and broadcast sender backend:
	// dev writes messages to DevEmailDir instead of sending them.
	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"dev"`
	DevEmailDir   string `env:"DEV_EMAIL_DIR" envDefault:"./tmp/emails"`
}

// Validate rejects values the env tags alone cannot express.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	switch c.EmailProvider {
	case EmailProviderDev, EmailProviderPostmark, EmailProviderSMTP:
	default:
		return fmt.Errorf("config: unknown email provider %q", c.EmailProvider)
	}
	return nil
}
