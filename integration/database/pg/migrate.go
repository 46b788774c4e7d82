package pg

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// migrate applies all pending migrations from the configured filesystem in
// version order. Goose tracks applied versions in its own table, so repeated
// establishment attempts after failures never re-run completed migrations.
// A migration failure is fatal to the connection attempt.
func (m *Manager) migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if m.migrations == nil {
		return nil
	}

	// Goose speaks database/sql; bridge the pgx pool without giving up its
	// connections. Closing the bridge returns them to the pool.
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, m.migrations)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	for _, r := range results {
		m.log.InfoContext(ctx, "applied migration",
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}

	return nil
}
