package repository

import (
	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с банком вопросов
type QuestionRepository interface {
	Create(question *entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	GetByText(text string) (*entity.Question, error)
	List() ([]entity.Question, error)
	GetRandomQuestions(limit int) ([]entity.Question, error)
	Update(question *entity.Question) error
	Delete(id uint) error
	// DeleteUnreferenced удаляет вопросы, на которые еще никто не отвечал
	DeleteUnreferenced() (int64, error)
}
