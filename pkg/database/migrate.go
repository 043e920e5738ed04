package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

func prepareGoose() error {
	goose.SetBaseFS(migrations)
	return goose.SetDialect("postgres")
}

func sqlDB(db *gorm.DB) (*sql.DB, error) {
	conn, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	return conn, nil
}

// MigrateUp applies every pending migration.
func MigrateUp(ctx context.Context, db *gorm.DB) error {
	conn, err := sqlDB(db)
	if err != nil {
		return err
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, conn, migrationsDir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, db *gorm.DB) error {
	conn, err := sqlDB(db)
	if err != nil {
		return err
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, conn, migrationsDir); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// MigrateStatus prints the applied state of each migration through goose's logger.
func MigrateStatus(ctx context.Context, db *gorm.DB) error {
	conn, err := sqlDB(db)
	if err != nil {
		return err
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, conn, migrationsDir)
}
