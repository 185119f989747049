package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/quiz-channels-api/internal/service"
)

//go:embed questions.yaml
var defaultQuestions []byte

type questionBank struct {
	Questions []service.QuestionInput `yaml:"questions"`
}

// DefaultQuestions возвращает встроенный банк вопросов
func DefaultQuestions() ([]service.QuestionInput, error) {
	return ParseQuestions(defaultQuestions)
}

// LoadQuestionsFile читает банк вопросов из YAML файла
func LoadQuestionsFile(path string) ([]service.QuestionInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}
	return ParseQuestions(data)
}

// ParseQuestions разбирает YAML вида {questions: [{text, option_a..option_d, correct_answer}]}
func ParseQuestions(data []byte) ([]service.QuestionInput, error) {
	var bank questionBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	if len(bank.Questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}
	return bank.Questions, nil
}
