package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/newsletter/core/basicauth"
	"github.com/dmitrymomot/newsletter/core/subscriber"
	"github.com/dmitrymomot/newsletter/integration/database/pg"
)

// Database supplies the lazily-established shared connection pool. Satisfied
// by *pg.Manager; every store operation acquires the pool through it so the
// first operation after startup (or after a failed attempt) triggers
// connection establishment and migrations.
type Database interface {
	Connection(ctx context.Context) (*pgxpool.Pool, error)
}

// Store persists the subscription lifecycle and the administrator records
// gating the broadcast operation.
type Store struct {
	db Database
}

// NewStore creates a subscription store on top of the shared connection.
func NewStore(db Database) *Store {
	return &Store{db: db}
}

// fallbackPasswordHash is compared against when the username is unknown so
// the failure path costs the same as a real password mismatch.
const fallbackPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CreateSubscriber inserts the confirmation token and the pending subscriber
// in a single transaction; both rows commit together or neither does. If the
// context carries an outer transaction (pg.WithTx), the writes join it and
// the outer owner controls the commit.
func (s *Store) CreateSubscriber(ctx context.Context, sub subscriber.Subscriber, token string) error {
	pool, err := s.db.Connection(ctx)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	if tx, ok := pg.TxFromContext(ctx); ok {
		return classifyStoreErr(createSubscriber(ctx, tx, sub, token))
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	defer tx.Rollback(ctx) // Safe even after commit.

	if err := createSubscriber(ctx, tx, sub, token); err != nil {
		return classifyStoreErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return classifyStoreErr(err)
	}
	return nil
}

func createSubscriber(ctx context.Context, tx pgx.Tx, sub subscriber.Subscriber, token string) error {
	var tokenID string
	if err := tx.QueryRow(ctx,
		`INSERT INTO subscription_tokens (token) VALUES ($1) RETURNING id::text`,
		token,
	).Scan(&tokenID); err != nil {
		return err
	}

	_, err := tx.Exec(ctx,
		`INSERT INTO subscriptions (name, email, status, token_id)
		 VALUES ($1, $2, $3, $4::uuid)`,
		sub.Name.String(), sub.Email.String(), subscriber.StatusPending, tokenID,
	)
	return err
}

// ConfirmSubscriber flips the subscriber owning the given token from pending
// to confirmed. Unknown tokens, already-confirmed subscribers, and any other
// status mismatch are a silent no-op; the store does not distinguish them.
func (s *Store) ConfirmSubscriber(ctx context.Context, token string) error {
	pool, err := s.db.Connection(ctx)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	_, err = pool.Exec(ctx,
		`UPDATE subscriptions
		 SET status = $1
		 WHERE status = $2
		   AND token_id = (SELECT id FROM subscription_tokens WHERE token = $3)`,
		subscriber.StatusConfirmed, subscriber.StatusPending, token,
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// ConfirmedSubscribers returns every subscriber currently in confirmed
// status, oldest first. No pagination: subscriber counts are assumed to fit
// in memory.
func (s *Store) ConfirmedSubscribers(ctx context.Context) ([]subscriber.Confirmed, error) {
	pool, err := s.db.Connection(ctx)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	rows, err := pool.Query(ctx,
		`SELECT email FROM subscriptions WHERE status = $1 ORDER BY created_at`,
		subscriber.StatusConfirmed,
	)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	defer rows.Close()

	var confirmed []subscriber.Confirmed
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, errors.Join(ErrStoreFailure, err)
		}
		confirmed = append(confirmed, subscriber.Confirmed{Email: subscriber.Email(email)})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return confirmed, nil
}

// ValidateCredentials checks the supplied credentials against the stored
// administrator record. Unknown usernames and wrong passwords are
// indistinguishable: both burn a bcrypt comparison and return
// ErrInvalidCredentials.
func (s *Store) ValidateCredentials(ctx context.Context, creds basicauth.Credentials) (uuid.UUID, error) {
	pool, err := s.db.Connection(ctx)
	if err != nil {
		return uuid.Nil, errors.Join(ErrStoreFailure, err)
	}

	var idText, passwordHash string
	err = pool.QueryRow(ctx,
		`SELECT id::text, password_hash FROM admins WHERE username = $1`,
		creds.Username,
	).Scan(&idText, &passwordHash)
	if err != nil {
		if pg.IsNotFoundError(err) {
			_ = bcrypt.CompareHashAndPassword([]byte(fallbackPasswordHash), []byte(creds.Password))
			return uuid.Nil, ErrInvalidCredentials
		}
		return uuid.Nil, errors.Join(ErrStoreFailure, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(creds.Password)); err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return uuid.Nil, errors.Join(ErrStoreFailure, err)
	}
	return id, nil
}

// CreateAdmin stores an administrator with a bcrypt password hash and returns
// the new record's id. Used by the bootstrap seed path.
func (s *Store) CreateAdmin(ctx context.Context, username, password string) (uuid.UUID, error) {
	pool, err := s.db.Connection(ctx)
	if err != nil {
		return uuid.Nil, errors.Join(ErrStoreFailure, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, errors.Join(ErrStoreFailure, err)
	}

	var idText string
	err = pool.QueryRow(ctx,
		`INSERT INTO admins (username, password_hash) VALUES ($1, $2) RETURNING id::text`,
		username, string(hash),
	).Scan(&idText)
	if err != nil {
		return uuid.Nil, errors.Join(ErrStoreFailure, err)
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return uuid.Nil, errors.Join(ErrStoreFailure, err)
	}
	return id, nil
}

// classifyStoreErr maps low-level pgx errors onto the store's error kinds.
func classifyStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if pg.IsDuplicateKeyError(err) {
		return errors.Join(ErrDuplicateSubscriber, err)
	}
	return errors.Join(ErrStoreFailure, err)
}
