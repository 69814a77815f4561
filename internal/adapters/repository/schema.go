package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is the subset of the sync tables this service reads. Statements are
// idempotent so Migrate can run on every start.
const schema = `
CREATE TABLE IF NOT EXISTS habits (
    id            TEXT PRIMARY KEY,
    user_id       TEXT NOT NULL,
    title         TEXT NOT NULL,
    schedule_text TEXT NOT NULL DEFAULT '',
    goal_text     TEXT NOT NULL DEFAULT '',
    start_date    TIMESTAMPTZ NOT NULL,
    end_date      TIMESTAMPTZ,
    sort_order    INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    deleted_at    TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_habits_user ON habits (user_id) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS habit_entries (
    id              TEXT PRIMARY KEY,
    habit_id        TEXT NOT NULL REFERENCES habits (id) ON DELETE CASCADE,
    user_id         TEXT NOT NULL,
    completion_date TIMESTAMPTZ NOT NULL,
    value           INTEGER NOT NULL DEFAULT 1,
    deleted_at      TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_habit_entries_habit ON habit_entries (habit_id) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS vacation_settings (
    user_id TEXT PRIMARY KEY,
    active  BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS vacation_periods (
    id         BIGSERIAL PRIMARY KEY,
    user_id    TEXT NOT NULL,
    start_date DATE NOT NULL,
    end_date   DATE NOT NULL,
    CHECK (end_date >= start_date)
);
`

func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
