package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"keep-notes-be/internal/config"
	"keep-notes-be/pkg/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	dsn     string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "keepctl",
	Short: "Operator tool for the Keep notes backend",
	Long: `keepctl manages the Keep notes database outside the HTTP server.

It applies schema migrations and runs the trash retention sweep on demand,
using the same configuration (.env and environment) as the server.`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "database connection string (default: DB_CONNECTION_STRING)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every SQL statement")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(sweepCmd)
}

func resolveDSN(cfg *config.Config) (string, error) {
	if dsn != "" {
		return dsn, nil
	}
	if cfg.Database.Connection == "" {
		return "", fmt.Errorf("no database configured: set DB_CONNECTION_STRING or pass --dsn")
	}
	return cfg.Database.Connection, nil
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	conn, err := resolveDSN(cfg)
	if err != nil {
		return nil, err
	}
	db, err := database.NewGormDBFromDSN(conn, verbose)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}
