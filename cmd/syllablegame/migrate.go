package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/syllablegame/backend/internal/config"
	"github.com/syllablegame/backend/internal/database"
	"github.com/syllablegame/backend/internal/logger"
	"go.uber.org/zap"
)

func newMigrateCmd() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply (or with --down, revert) the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := logger.Init(cfg.Logging.Level); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()

			db, err := database.Connect(cmd.Context(), cfg.DSN(), cfg.Database.ConnectAttempts, cfg.Database.ConnectDelay, logger.Logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if down {
				if err := database.Rollback(db); err != nil {
					return err
				}
				logger.Logger.Info("Migrations rolled back")
				return nil
			}

			if err := database.Migrate(db); err != nil {
				return err
			}
			logger.Logger.Info("Migrations applied", zap.String("driver", db.DriverName()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "revert every applied migration")

	return cmd
}
