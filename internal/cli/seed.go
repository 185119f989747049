package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-channels-api/internal/repository/gormdb"
	"github.com/yourusername/quiz-channels-api/internal/seed"
	"github.com/yourusername/quiz-channels-api/internal/service"
	"github.com/yourusername/quiz-channels-api/pkg/database"
)

func newSeedCmd(configPath *string) *cobra.Command {
	var (
		replace bool
		file    string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			questions, err := seed.DefaultQuestions()
			if file != "" {
				questions, err = seed.LoadQuestionsFile(file)
			}
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			// Кеш не нужен: процесс seed короткоживущий
			questionService := service.NewQuestionService(gormdb.NewUnitOfWork(db), nil, 0)
			created, err := questionService.ImportQuestions(cmd.Context(), questions, replace)
			if err != nil {
				return err
			}
			log.Info().Int("created", created).Int("total", len(questions)).Bool("replace", replace).Msg("Банк вопросов загружен")
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "remove questions without answers before loading")
	cmd.Flags().StringVar(&file, "file", "", "YAML question bank instead of the built-in one")
	return cmd
}
