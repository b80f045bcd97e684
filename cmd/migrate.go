package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/traPtitech/pinboard/migration"
	"github.com/traPtitech/pinboard/utils/gormzap"
)

// migrateCommand データベースマイグレーションコマンド
func migrateCommand() *cobra.Command {
	var dropDB bool

	cmd := cobra.Command{
		Use:   "migrate",
		Short: "Execute database schema migration only",
		RunE: func(_ *cobra.Command, _ []string) error {
			logger := getCLILogger()
			defer logger.Sync()

			engine, err := c.getDatabase()
			if err != nil {
				return err
			}
			engine.Logger = gormzap.New(logger.Named("gorm"))
			db, err := engine.DB()
			if err != nil {
				return err
			}
			defer db.Close()

			if dropDB {
				logger.Info("resetting database...")
				if err := migration.DropAll(engine); err != nil {
					return err
				}
				logger.Info("all tables have been dropped")
			}

			logger.Info("migrating database...")
			init, err := migration.Migrate(engine)
			if err != nil {
				return err
			}
			logger.Info("database migration was completed", zap.Bool("init", init))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&dropDB, "reset", false, "whether to truncate database (drop all tables)")

	return &cmd
}
