package database

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/myfiorentina/progetto-fitness/internal/models"
)

// PostgresSchema creates the ledger tables. Every statement is idempotent.
var PostgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS meal_entries (
		id BIGSERIAL PRIMARY KEY,
		meal_time TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		food_name TEXT NOT NULL,
		quantity TEXT,
		calories DOUBLE PRECISION NOT NULL,
		protein_g DOUBLE PRECISION NOT NULL,
		fat_total_g DOUBLE PRECISION NOT NULL,
		carbohydrates_total_g DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_meal_entries_meal_time ON meal_entries (meal_time DESC)`,
	`CREATE TABLE IF NOT EXISTS body_measurements (
		id BIGSERIAL PRIMARY KEY,
		measurement_time TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		weight_kg DOUBLE PRECISION NOT NULL,
		body_fat_pct DOUBLE PRECISION,
		muscle_mass_pct DOUBLE PRECISION,
		water_pct DOUBLE PRECISION
	)`,
}

// EnsureSchema creates the ledger tables if they are missing. Postgres gets
// the hand-written DDL; other dialects (sqlite in tests) use AutoMigrate.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		if err := db.WithContext(ctx).AutoMigrate(&models.MealEntry{}, &models.BodyMeasurement{}); err != nil {
			return fmt.Errorf("failed to migrate tables: %w", err)
		}
		return nil
	}

	for _, stmt := range PostgresSchema {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// ApplySchemaSQL runs PostgresSchema over a plain database/sql handle in a
// single transaction.
func ApplySchemaSQL(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	for _, stmt := range PostgresSchema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}
