package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitSchema crea las tablas si no existen, en una sola transacción.
// Las claves foráneas de user_parcel_assignments llevan ON DELETE CASCADE
// como respaldo de la cascada que los casos de uso ejecutan explícitamente.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			phone_number TEXT NOT NULL UNIQUE,
			email TEXT UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'customer',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS locations (
			id BIGSERIAL PRIMARY KEY,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			cost_per_kg NUMERIC(12,2) NOT NULL CHECK (cost_per_kg > 0),
			UNIQUE (origin, destination)
		)`,
		`CREATE TABLE IF NOT EXISTS vehicles (
			id BIGSERIAL PRIMARY KEY,
			number_plate TEXT NOT NULL UNIQUE,
			capacity NUMERIC(12,2) NOT NULL,
			driver_name TEXT NOT NULL DEFAULT '',
			driver_phone TEXT NOT NULL DEFAULT '',
			departure_time TEXT NOT NULL DEFAULT '',
			expected_arrival_time TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'empty',
			location_id BIGINT REFERENCES locations(id)
		)`,
		`CREATE TABLE IF NOT EXISTS parcels (
			id BIGSERIAL PRIMARY KEY,
			description TEXT NOT NULL,
			tracking_number TEXT NOT NULL UNIQUE,
			weight NUMERIC(12,3) NOT NULL CHECK (weight > 0),
			status TEXT NOT NULL DEFAULT 'pending',
			shipping_cost NUMERIC(12,2),
			sender_id BIGINT NOT NULL REFERENCES users(id),
			recipient_id BIGINT NOT NULL REFERENCES users(id),
			vehicle_id BIGINT REFERENCES vehicles(id),
			location_id BIGINT REFERENCES locations(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS user_parcel_assignments (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			parcel_id BIGINT NOT NULL REFERENCES parcels(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_user_id ON user_parcel_assignments(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_assignments_parcel_id ON user_parcel_assignments(parcel_id)`,
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: statement #%d: %w", i+1, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}
