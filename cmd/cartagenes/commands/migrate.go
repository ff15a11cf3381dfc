package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/CartagenesDev/cartagenes-finacias/internal/auth"
)

// migrateCmd creates the session document table
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria o schema do backend de sessão Postgres",
	Long: `Cria o schema app e a tabela app.documents usada por SESSION_BACKEND=postgres.
A operação é idempotente.

Example:
  DATABASE_URL=postgres://... go run ./cmd/cartagenes migrate`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.db == nil {
		return fmt.Errorf("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	health, err := rt.db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("database health check: %w", err)
	}
	rt.log.WithField("latency", health.ResponseTime).Info("Database reachable")

	if err := auth.Migrate(ctx, rt.db.Pool); err != nil {
		return err
	}

	PrintSuccess("Session schema is up to date")
	return nil
}
