package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Schema creates the linked accounts table. Callers owning their own
// migrations can inline it there instead.
const Schema = `
CREATE TABLE IF NOT EXISTS linked_accounts (
    id               TEXT PRIMARY KEY,
    user_id          TEXT NOT NULL,
    provider         TEXT NOT NULL,
    provider_user_id TEXT NOT NULL,
    provider_email   TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMPTZ NOT NULL,
    updated_at       TIMESTAMPTZ NOT NULL,
    UNIQUE (provider, provider_user_id)
);
CREATE INDEX IF NOT EXISTS linked_accounts_user_idx ON linked_accounts (user_id);
`

// SQLStore is a Postgres-backed Store.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore opens a Postgres connection and ensures the schema
// exists.
func NewSQLStore(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, accountErrors.NewWithCause(ErrStore, err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, accountErrors.NewWithCause(ErrStore, err)
	}
	return &SQLStore{db: db}, nil
}

// NewSQLStoreWithDB wraps an already-open connection. The schema is
// assumed to exist.
func NewSQLStoreWithDB(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) Link(ctx context.Context, account Account) (Account, error) {
	now := time.Now().UTC()
	account.ID = newAccountID()
	account.CreatedAt = now
	account.UpdatedAt = now

	const query = `
		INSERT INTO linked_accounts
			(id, user_id, provider, provider_user_id, provider_email, created_at, updated_at)
		VALUES
			(:id, :user_id, :provider, :provider_user_id, :provider_email, :created_at, :updated_at)
		ON CONFLICT (provider, provider_user_id) DO UPDATE SET
			user_id        = EXCLUDED.user_id,
			provider_email = EXCLUDED.provider_email,
			updated_at     = EXCLUDED.updated_at
		RETURNING id, user_id, provider, provider_user_id, provider_email, created_at, updated_at`

	rows, err := s.db.NamedQueryContext(ctx, query, account)
	if err != nil {
		return Account{}, accountErrors.NewWithCause(ErrStore, err)
	}
	defer rows.Close()

	var stored Account
	if !rows.Next() {
		return Account{}, accountErrors.New(ErrStore)
	}
	if err := rows.StructScan(&stored); err != nil {
		return Account{}, accountErrors.NewWithCause(ErrStore, err)
	}
	return stored, nil
}

func (s *SQLStore) FindByProvider(ctx context.Context, provider, providerUserID string) (Account, error) {
	const query = `
		SELECT id, user_id, provider, provider_user_id, provider_email, created_at, updated_at
		FROM linked_accounts
		WHERE provider = $1 AND provider_user_id = $2`

	var account Account
	err := s.db.GetContext(ctx, &account, query, provider, providerUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, accountErrors.New(ErrAccountNotFound).
			WithDetail("provider", provider)
	}
	if err != nil {
		return Account{}, accountErrors.NewWithCause(ErrStore, err)
	}
	return account, nil
}

func (s *SQLStore) ListForUser(ctx context.Context, userID string) ([]Account, error) {
	const query = `
		SELECT id, user_id, provider, provider_user_id, provider_email, created_at, updated_at
		FROM linked_accounts
		WHERE user_id = $1
		ORDER BY provider`

	accounts := []Account{}
	if err := s.db.SelectContext(ctx, &accounts, query, userID); err != nil {
		return nil, accountErrors.NewWithCause(ErrStore, err)
	}
	return accounts, nil
}

func (s *SQLStore) Unlink(ctx context.Context, userID, provider string) error {
	const query = `DELETE FROM linked_accounts WHERE user_id = $1 AND provider = $2`

	res, err := s.db.ExecContext(ctx, query, userID, provider)
	if err != nil {
		return accountErrors.NewWithCause(ErrStore, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return accountErrors.NewWithCause(ErrStore, err)
	}
	if affected == 0 {
		return accountErrors.New(ErrAccountNotFound).
			WithDetail("provider", provider)
	}
	return nil
}
