package repository

import (
	"time"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
)

// ParticipantRepository определяет методы для работы с участниками каналов
type ParticipantRepository interface {
	Create(participant *entity.Participant) error
	GetByUserAndChannel(userID, channelID uint) (*entity.Participant, error)
	ResetStartTime(id uint, startedAt time.Time) error
	UpdateScore(id uint, score int) error
	MarkSubmitted(id uint) error

	// ListWithAnswers возвращает всех участников с пользователем, каналом и ответами
	ListWithAnswers() ([]entity.Participant, error)
	// ListByUserWithDetails возвращает участия пользователя с ответами и текстами вопросов
	ListByUserWithDetails(userID uint) ([]entity.Participant, error)

	DeleteByChannel(channelID uint) (int64, error)
	DeleteAll() (int64, error)
}
