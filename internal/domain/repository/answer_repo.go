package repository

import (
	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
)

// AnswerRepository определяет методы для работы с ответами участников
type AnswerRepository interface {
	Create(answer *entity.Answer) error
	// Upsert сохраняет ответ или перезаписывает ответ на тот же вопрос
	Upsert(answer *entity.Answer) error
	// CountCorrect считает правильные ответы участника (источник истины для счета)
	CountCorrect(participantID uint) (int64, error)
	CountByQuestion(questionID uint) (int64, error)
	DeleteByChannel(channelID uint) (int64, error)
	DeleteAll() (int64, error)
}
