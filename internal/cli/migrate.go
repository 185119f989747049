package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-channels-api/internal/config"
	"github.com/yourusername/quiz-channels-api/pkg/database"
)

// openDatabase подключается к БД и применяет миграции
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.MigrateDB(db, cfg.Database.Driver); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			log.Info().Str("driver", cfg.Database.Driver).Msg("Миграции применены")
			return nil
		},
	}
}

func newResetDBCmd(configPath *string) *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "reset-db",
		Short: "Drop all tables and recreate the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("reset-db deletes all data, rerun with --yes to confirm")
			}
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			db, err := database.NewDB(cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.ResetDB(db, cfg.Database.Driver); err != nil {
				return err
			}
			log.Info().Msg("База данных пересоздана")
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm deleting all data")
	return cmd
}
