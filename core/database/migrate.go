package database

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"tutorhub-api/core/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies pending schema migrations using the embedded SQL files.
func (d *Database) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, d.db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, d.db)
	if err != nil {
		return fmt.Errorf("get migration version: %w", err)
	}

	logger.Info("Database migrations applied", "version", version)
	return nil
}
