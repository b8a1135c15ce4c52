package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"tailorshop/internal/adapters/out/postgres"

	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// EnsureDatabase creates the configured database when it does not exist yet.
func EnsureDatabase(ctx context.Context, configs Config) error {
	db, err := sql.Open("postgres", configs.ServerDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", configs.DBName,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err = db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(configs.DBName)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", configs.DBName, err)
	}
	return nil
}

// OpenDatabase connects gorm to the configured database.
func OpenDatabase(configs Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// MigrateDatabase creates the database if needed and brings the schema up to date.
func MigrateDatabase(ctx context.Context, configs Config) error {
	if err := EnsureDatabase(ctx, configs); err != nil {
		return err
	}

	db, err := OpenDatabase(configs)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return postgres.Migrate(db.WithContext(ctx))
}
