package gormdb

import (
	"gorm.io/gorm"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-channels-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает вопрос. Дубликат текста возвращает ErrConflict.
func (r *QuestionRepo) Create(question *entity.Question) error {
	return translateError(r.db.Create(question).Error)
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

// GetByText возвращает вопрос по тексту
func (r *QuestionRepo) GetByText(text string) (*entity.Question, error) {
	var question entity.Question
	if err := r.db.Where("text = ?", text).First(&question).Error; err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

// List возвращает весь банк вопросов
func (r *QuestionRepo) List() ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Order("id").Find(&questions).Error
	return questions, err
}

// GetRandomQuestions возвращает до limit случайных вопросов без повторов.
// RANDOM() поддерживается и SQLite, и PostgreSQL.
func (r *QuestionRepo) GetRandomQuestions(limit int) ([]entity.Question, error) {
	var questions []entity.Question
	if limit <= 0 {
		return questions, nil
	}
	err := r.db.Order("RANDOM()").Limit(limit).Find(&questions).Error
	return questions, err
}

// Update сохраняет вопрос
func (r *QuestionRepo) Update(question *entity.Question) error {
	return translateError(r.db.Save(question).Error)
}

// Delete удаляет вопрос по ID
func (r *QuestionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Question{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteUnreferenced удаляет вопросы, на которые нет ответов
func (r *QuestionRepo) DeleteUnreferenced() (int64, error) {
	answered := r.db.Model(&entity.Answer{}).Select("question_id")
	result := r.db.Where("id NOT IN (?)", answered).Delete(&entity.Question{})
	return result.RowsAffected, translateError(result.Error)
}
