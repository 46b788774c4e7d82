package pg

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectFunc establishes a ready-to-use pool. The default implementation
// connects, signs in under the manager's scope, and applies migrations;
// tests replace it to observe the single-flight behavior without a database.
type ConnectFunc func(ctx context.Context) (*pgxpool.Pool, error)

// Manager owns the single lazily-established connection pool. It is safe for
// concurrent use: the first callers of Connection share one initialization
// attempt, a successful pool is memoized for the process lifetime, and a
// failed attempt is never cached, so the next caller retries from scratch.
type Manager struct {
	cfg        Config
	scope      AuthScope
	migrations fs.FS
	log        *slog.Logger
	connect    ConnectFunc

	mu       sync.Mutex
	pool     *pgxpool.Pool
	inflight *attempt
}

// attempt is one in-flight initialization. Waiters park on done and read the
// outcome fields afterwards; both are written exactly once before close(done).
type attempt struct {
	done chan struct{}
	pool *pgxpool.Pool
	err  error
}

// Option configures a Manager.
type Option func(*Manager)

// WithMigrations sets the filesystem holding goose SQL migrations. They are
// applied in version order during connection establishment, before the pool
// is handed to any caller.
func WithMigrations(fsys fs.FS) Option {
	return func(m *Manager) { m.migrations = fsys }
}

// WithLogger sets the logger used for connection and migration progress.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithConnectFunc replaces the whole connection sequence. Intended for tests
// that need to count or fail initialization attempts deterministically.
func WithConnectFunc(fn ConnectFunc) Option {
	return func(m *Manager) { m.connect = fn }
}

// NewManager creates a connection manager for the given configuration. The
// authentication scope is derived from the configuration shape once, here.
func NewManager(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:   cfg,
		scope: ScopeFromConfig(cfg),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.connect == nil {
		m.connect = m.establish
	}
	return m
}

// Scope returns the authentication scope the manager signs in under.
func (m *Manager) Scope() AuthScope { return m.scope }

// Connection returns the shared pool, establishing it on first use.
//
// Exactly one initialization attempt runs at a time; concurrent callers wait
// on it and observe the same outcome. Success is memoized, failure resets the
// manager so a later call starts a fresh attempt.
func (m *Manager) Connection(ctx context.Context) (*pgxpool.Pool, error) {
	m.mu.Lock()
	if m.pool != nil {
		pool := m.pool
		m.mu.Unlock()
		return pool, nil
	}
	if a := m.inflight; a != nil {
		m.mu.Unlock()
		select {
		case <-a.done:
			return a.pool, a.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	a := &attempt{done: make(chan struct{})}
	m.inflight = a
	m.mu.Unlock()

	a.pool, a.err = m.connect(ctx)

	m.mu.Lock()
	if a.err == nil {
		m.pool = a.pool
	}
	m.inflight = nil
	m.mu.Unlock()
	close(a.done)

	return a.pool, a.err
}

// Healthcheck verifies that the database is reachable, establishing the
// connection first if needed. Suitable for readiness probes.
func (m *Manager) Healthcheck(ctx context.Context) error {
	pool, err := m.Connection(ctx)
	if err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	if err := pool.Ping(ctx); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

// Close releases the pool if one was established. The manager must not be
// used afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	pool := m.pool
	m.pool = nil
	m.mu.Unlock()
	if pool != nil {
		pool.Close()
	}
}

// establish is the default connection sequence: parse the URL, apply
// credentials and scope, connect with retry, then bring the schema up to
// date. Any failure discards the pool so nothing half-initialized escapes.
func (m *Manager) establish(ctx context.Context) (*pgxpool.Pool, error) {
	if m.cfg.URL == "" {
		return nil, ErrEmptyConnectionString
	}

	poolCfg, err := pgxpool.ParseConfig(m.cfg.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if m.cfg.Username != "" {
		poolCfg.ConnConfig.User = m.cfg.Username
	}
	if m.cfg.Password != "" {
		poolCfg.ConnConfig.Password = m.cfg.Password
	}
	// Only non-zero settings override pgxpool defaults.
	if m.cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = m.cfg.MaxOpenConns
	}
	if m.cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = m.cfg.MaxIdleConns
	}
	if m.cfg.HealthCheckPeriod > 0 {
		poolCfg.HealthCheckPeriod = m.cfg.HealthCheckPeriod
	}
	if m.cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = m.cfg.MaxConnIdleTime
	}
	if m.cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = m.cfg.MaxConnLifetime
	}

	m.scope.ApplyTo(poolCfg)

	m.log.InfoContext(ctx, "connecting to postgres",
		slog.String("scope", m.scope.String()),
		slog.String("database", poolCfg.ConnConfig.Database),
	)

	pool, err := m.connectWithRetry(ctx, poolCfg)
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDBConnection, err)
	}

	if err := m.migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// connectWithRetry attempts the initial connection, retrying transient
// failures so service and database restarts don't have to be ordered.
func (m *Manager) connectWithRetry(ctx context.Context, poolCfg *pgxpool.Config) (*pgxpool.Pool, error) {
	attempts := m.cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			m.log.WarnContext(ctx, "retrying postgres connection",
				slog.Int("attempt", i+1),
				slog.Any("error", lastErr),
			)
			select {
			case <-time.After(m.cfg.RetryInterval):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			lastErr = err
			continue
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			lastErr = err
			continue
		}
		return pool, nil
	}
	return nil, lastErr
}
