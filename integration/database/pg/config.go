package pg

import "time"

// Config holds the immutable connection configuration, loaded once at startup.
//
// Namespace and ScopeName control the authentication scope (see doc.go): the
// namespace selects the target database, the scope name selects the schema
// within it. When both are empty the manager signs in at root level against
// the URL's own database.
type Config struct {
	URL      string `env:"URL,required"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	Namespace string `env:"NAMESPACE"`
	ScopeName string `env:"SCOPE_NAME"`

	MaxOpenConns      int32         `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"MAX_IDLE_CONNS" envDefault:"5"`
	HealthCheckPeriod time.Duration `env:"HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"30m"`
	RetryAttempts     int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval     time.Duration `env:"RETRY_INTERVAL" envDefault:"5s"`
}
