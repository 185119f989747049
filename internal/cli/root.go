package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-channels-api/internal/config"
	"github.com/yourusername/quiz-channels-api/internal/logger"
)

// Execute запускает CLI
func Execute() error {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("Команда завершилась с ошибкой")
		return err
	}
	return nil
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	var configPath string
	cmd := &cobra.Command{
		Use:           "quiz-api",
		Short:         "Quiz channels backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")

	cmd.AddCommand(
		newServeCmd(&configPath),
		newMigrateCmd(&configPath),
		newResetDBCmd(&configPath),
		newSeedCmd(&configPath),
	)
	return cmd
}

// loadConfig читает конфигурацию и настраивает логгер
func loadConfig(path string) (*config.Config, error) {
	logger.Init("info", false)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
	return cfg, nil
}
