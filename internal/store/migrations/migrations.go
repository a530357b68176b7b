package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	version    int
	name       string
	statements []string
}

var all = []migration{
	{
		version: 1,
		name:    "create_brands",
		statements: []string{
			`CREATE SEQUENCE IF NOT EXISTS brands_id_seq`,
			`CREATE TABLE IF NOT EXISTS brands (
				id BIGINT PRIMARY KEY DEFAULT nextval('brands_id_seq'),
				name VARCHAR NOT NULL UNIQUE
			)`,
		},
	},
	{
		version: 2,
		name:    "create_stores",
		statements: []string{
			`CREATE SEQUENCE IF NOT EXISTS stores_id_seq`,
			`CREATE TABLE IF NOT EXISTS stores (
				id BIGINT PRIMARY KEY DEFAULT nextval('stores_id_seq'),
				name VARCHAR NOT NULL,
				brand_id BIGINT NOT NULL,
				industry VARCHAR,
				status INTEGER NOT NULL DEFAULT 0,
				api_id VARCHAR NOT NULL UNIQUE,
				facebook_verified BOOLEAN NOT NULL DEFAULT false,
				facebook_id VARCHAR,
				facebook_page_name VARCHAR,
				facebook_url VARCHAR,
				google_verified BOOLEAN NOT NULL DEFAULT false,
				google_place_id VARCHAR,
				google_location_id VARCHAR,
				google_maps_url VARCHAR,
				trip_advisor_verified BOOLEAN NOT NULL DEFAULT false,
				trip_advisor_id VARCHAR,
				trip_advisor_partner_property_id VARCHAR,
				trip_advisor_url VARCHAR,
				zomato_verified BOOLEAN NOT NULL DEFAULT false,
				zomato_id VARCHAR,
				zomato_url VARCHAR,
				instagram_verified BOOLEAN NOT NULL DEFAULT false,
				instagram_id VARCHAR,
				instagram_url VARCHAR,
				latitude DOUBLE,
				longitude DOUBLE,
				created_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
				updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp
			)`,
		},
	},
	{
		version: 3,
		name:    "create_users",
		statements: []string{
			`CREATE SEQUENCE IF NOT EXISTS users_id_seq`,
			`CREATE TABLE IF NOT EXISTS users (
				id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
				name VARCHAR NOT NULL,
				surname VARCHAR NOT NULL,
				username VARCHAR NOT NULL UNIQUE,
				password VARCHAR NOT NULL,
				roles VARCHAR NOT NULL DEFAULT '[]',
				timezone VARCHAR NOT NULL DEFAULT 'UTC',
				soft_deleted BOOLEAN NOT NULL DEFAULT false,
				created_at TIMESTAMP NOT NULL DEFAULT current_timestamp
			)`,
		},
	},
	{
		version: 4,
		name:    "create_view_state",
		statements: []string{
			`CREATE TABLE IF NOT EXISTS view_state (
				user_id BIGINT NOT NULL,
				state_key VARCHAR NOT NULL,
				state_value VARCHAR NOT NULL,
				updated_at TIMESTAMP NOT NULL DEFAULT current_timestamp,
				PRIMARY KEY (user_id, state_key)
			)`,
		},
	},
}

// Run applies all pending migrations in version order. Applied versions are
// recorded in schema_migrations, so running it again is a no-op.
func Run(ctx context.Context, db *sql.DB) error {
	logger := zap.S().Named("migrations")

	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name VARCHAR NOT NULL,
		applied_at TIMESTAMP NOT NULL DEFAULT current_timestamp
	)`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	for _, m := range all {
		var count int
		err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, m.version).Scan(&count)
		if err != nil {
			return fmt.Errorf("checking migration %d: %w", m.version, err)
		}
		if count > 0 {
			continue
		}

		logger.Infow("applying migration", "version", m.version, "name", m.name)

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("starting transaction for migration %d: %w", m.version, err)
		}
		if err := apply(ctx, tx, m); err != nil {
			_ = tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.version, err)
		}
	}

	return nil
}

func apply(ctx context.Context, tx *sql.Tx, m migration) error {
	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying migration %d (%s): %w", m.version, m.name, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
		return fmt.Errorf("recording migration %d: %w", m.version, err)
	}
	return nil
}
