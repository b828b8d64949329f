package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the full relational model. Profile tables are 1:1 with users
// (unique FK) and cascade on delete, so a profile can never outlive or
// outnumber its user.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS publisher_profiles (
	id           BIGSERIAL PRIMARY KEY,
	user_id      BIGINT NOT NULL UNIQUE REFERENCES users (id) ON DELETE CASCADE,
	display_name TEXT NOT NULL,
	domain       TEXT,
	created_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS advertiser_profiles (
	id           BIGSERIAL PRIMARY KEY,
	user_id      BIGINT NOT NULL UNIQUE REFERENCES users (id) ON DELETE CASCADE,
	company_name TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema applies the DDL idempotently at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
