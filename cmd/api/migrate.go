package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/case-service/internal/config"
	"github.com/spec-kit/case-service/internal/observability"
	"github.com/spec-kit/case-service/internal/persistence"
)

// migrateCmd applies the embedded database migrations.
var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|reset]",
	Short:     "Run database migrations",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status", "reset"},
	RunE: func(cmd *cobra.Command, args []string) error {
		command := "up"
		if len(args) > 0 {
			command = args[0]
		}
		dsn, _ := cmd.Flags().GetString("dsn")
		return migrate(cmd.Context(), dsn, command)
	},
}

func init() {
	migrateCmd.Flags().String("dsn", "", "PostgreSQL DSN, overrides POSTGRES_DSN")
	rootCmd.AddCommand(migrateCmd)
}

func migrate(ctx context.Context, dsn, command string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dsn != "" {
		cfg.Postgres.DSN = dsn
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("a DSN is required: set POSTGRES_DSN or pass --dsn")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("failed to connect postgres: %w", err)
	}
	defer pg.Close()

	return persistence.RunMigrations(ctx, pg.PoolHandle(), command, logger)
}
