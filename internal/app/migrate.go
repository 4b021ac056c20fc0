package app

import (
	"database/sql"
	"fmt"

	goose "github.com/pressly/goose/v3"

	schema "github.com/guttosm/floorsheet/db"
	"github.com/guttosm/floorsheet/internal/logger"
)

// gooseUp is an indirection for unit testing.
var gooseUp = func(db *sql.DB) error {
	goose.SetBaseFS(schema.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, schema.MigrationsDir)
}

// Migrate applies the embedded schema migrations.
func Migrate(db *sql.DB) error {
	if err := gooseUp(db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.L().Info().Msg("migrations applied")
	return nil
}
