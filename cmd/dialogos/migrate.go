package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abdulachik/dialogos/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run all pending migrations on the SQLite dialogue store
(used when store_backend is sqlite).`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if appConfig.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}

	slog.Info("connecting to database", "path", appConfig.DatabasePath)
	conn, err := db.NewStore(ctx, appConfig.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer conn.Close()

	pending, err := conn.Pending(ctx)
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	if len(pending) == 0 {
		fmt.Println(mutedStyle.Render("Database schema is up to date"))
		return nil
	}

	if err := conn.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("migrations completed successfully", "applied", len(pending))
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Applied %d migration(s)", len(pending))))
	return nil
}
