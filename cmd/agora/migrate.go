package main

import (
	"agora/internal/adapters/database"
	"agora/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := config.OpenDatabase(settings)
			if err != nil {
				return err
			}
			defer closeDatabase(db, logger)

			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			logger.Info("✅ Database migrations completed", zap.String("driver", settings.DBDriver))
			return nil
		},
	}
}
