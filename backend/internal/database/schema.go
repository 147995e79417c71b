package database

import (
	"context"
	"fmt"
)

// schemaSQL bootstraps the tables on startup. Idempotent; a real migration
// tool can take over once the schema starts changing between releases.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profiles (
	user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	full_name TEXT NOT NULL,
	phone TEXT,
	kyc_status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS user_roles (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	role TEXT NOT NULL CHECK (role IN ('admin', 'user')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, role)
);

CREATE TABLE IF NOT EXISTS gift_card_rates (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	brand TEXT NOT NULL,
	country TEXT NOT NULL,
	rate NUMERIC(18,2) NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (brand, country)
);

CREATE TABLE IF NOT EXISTS bitcoin_rates (
	id BIGSERIAL PRIMARY KEY,
	rate NUMERIC(18,2) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS trades (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id),
	kind TEXT NOT NULL CHECK (kind IN ('gift_card', 'bitcoin')),
	rate NUMERIC(18,2) NOT NULL,
	payout_amount NUMERIC(18,2) NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
	admin_notes TEXT,
	brand TEXT,
	country TEXT,
	card_value NUMERIC(18,2),
	image_url TEXT,
	btc_amount NUMERIC(24,8),
	btc_address TEXT,
	tx_hash TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_trades_user ON trades(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(status, created_at DESC);

CREATE TABLE IF NOT EXISTS wallets (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id),
	currency TEXT NOT NULL DEFAULT 'NGN',
	balance NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, currency)
);

CREATE TABLE IF NOT EXISTS transactions (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id),
	type TEXT NOT NULL,
	amount NUMERIC(18,2) NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	reference TEXT,
	description TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, created_at DESC);
CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_reference ON transactions(reference) WHERE reference IS NOT NULL;

CREATE TABLE IF NOT EXISTS bank_accounts (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	bank_name TEXT NOT NULL,
	account_name TEXT NOT NULL,
	account_number TEXT NOT NULL,
	is_default BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate applies the bootstrap schema.
func Migrate(ctx context.Context) error {
	if _, err := DB.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}
