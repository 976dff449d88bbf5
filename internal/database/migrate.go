package database

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema, applied idempotently on startup
const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS users (
	id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	device_id    TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL,
	avatar_url   TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS trips (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name        TEXT NOT NULL,
	description TEXT,
	cover_image TEXT,
	start_date  DATE,
	end_date    DATE,
	join_code   TEXT NOT NULL UNIQUE,
	created_by  UUID NOT NULL REFERENCES users(id),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS trip_members (
	id        UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	trip_id   UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
	user_id   UUID NOT NULL REFERENCES users(id),
	role      TEXT NOT NULL DEFAULT 'editor' CHECK (role IN ('owner', 'editor', 'viewer')),
	joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (trip_id, user_id)
);

CREATE TABLE IF NOT EXISTS itinerary_days (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	trip_id    UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
	date       DATE NOT NULL,
	notes      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS activities (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	day_id        UUID NOT NULL REFERENCES itinerary_days(id) ON DELETE CASCADE,
	name          TEXT NOT NULL,
	description   TEXT,
	location_name TEXT,
	latitude      DOUBLE PRECISION,
	longitude     DOUBLE PRECISION,
	start_time    TIMESTAMPTZ,
	end_time      TIMESTAMPTZ,
	category      TEXT NOT NULL DEFAULT 'other' CHECK (category IN ('food', 'attraction', 'transport', 'lodging', 'other')),
	order_index   INT NOT NULL DEFAULT 0,
	created_by    UUID NOT NULL REFERENCES users(id),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS expenses (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	trip_id     UUID NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
	activity_id UUID REFERENCES activities(id) ON DELETE SET NULL,
	description TEXT NOT NULL,
	amount      DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
	currency    TEXT NOT NULL DEFAULT 'USD',
	paid_by     UUID NOT NULL REFERENCES users(id),
	split_type  TEXT NOT NULL DEFAULT 'equal' CHECK (split_type IN ('equal', 'custom', 'full')),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS expense_splits (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	expense_id UUID NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
	user_id    UUID NOT NULL REFERENCES users(id),
	amount     DOUBLE PRECISION NOT NULL,
	is_settled BOOLEAN NOT NULL DEFAULT FALSE,
	settled_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS trip_members_user_id ON trip_members(user_id);
CREATE INDEX IF NOT EXISTS itinerary_days_trip_id ON itinerary_days(trip_id);
CREATE INDEX IF NOT EXISTS activities_day_id ON activities(day_id);
CREATE INDEX IF NOT EXISTS expenses_trip_id ON expenses(trip_id);
CREATE INDEX IF NOT EXISTS expense_splits_expense_id ON expense_splits(expense_id);
`

// Migrate applies the schema
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
