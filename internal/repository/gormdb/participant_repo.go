package gormdb

import (
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-channels-api/internal/pkg/errors"
)

// ParticipantRepo реализует repository.ParticipantRepository
type ParticipantRepo struct {
	db *gorm.DB
}

// NewParticipantRepo создает новый репозиторий участников
func NewParticipantRepo(db *gorm.DB) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

// Create создает участие. Повторное участие в том же канале возвращает ErrConflict.
func (r *ParticipantRepo) Create(participant *entity.Participant) error {
	return translateError(r.db.Create(participant).Error)
}

// GetByUserAndChannel возвращает участие пользователя в канале
func (r *ParticipantRepo) GetByUserAndChannel(userID, channelID uint) (*entity.Participant, error) {
	var participant entity.Participant
	err := r.db.Where("user_id = ? AND channel_id = ?", userID, channelID).First(&participant).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &participant, nil
}

// ResetStartTime перезапускает отсчет времени прохождения
func (r *ParticipantRepo) ResetStartTime(id uint, startedAt time.Time) error {
	return r.updateColumn(id, "quiz_started_at", startedAt)
}

// UpdateScore сохраняет пересчитанный счет
func (r *ParticipantRepo) UpdateScore(id uint, score int) error {
	return r.updateColumn(id, "score", score)
}

// MarkSubmitted помечает викторину как сданную
func (r *ParticipantRepo) MarkSubmitted(id uint) error {
	return r.updateColumn(id, "quiz_submitted", true)
}

func (r *ParticipantRepo) updateColumn(id uint, column string, value interface{}) error {
	result := r.db.Model(&entity.Participant{}).Where("id = ?", id).UpdateColumn(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListWithAnswers возвращает всех участников с пользователем, каналом и ответами
func (r *ParticipantRepo) ListWithAnswers() ([]entity.Participant, error) {
	var participants []entity.Participant
	err := r.db.
		Preload("User").
		Preload("Channel").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("question_id") }).
		Order("id").
		Find(&participants).Error
	return participants, err
}

// ListByUserWithDetails возвращает участия пользователя с ответами и вопросами
func (r *ParticipantRepo) ListByUserWithDetails(userID uint) ([]entity.Participant, error) {
	var participants []entity.Participant
	err := r.db.
		Preload("User").
		Preload("Channel").
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("question_id") }).
		Preload("Answers.Question").
		Where("user_id = ?", userID).
		Order("id").
		Find(&participants).Error
	return participants, err
}

// DeleteByChannel удаляет участников канала
func (r *ParticipantRepo) DeleteByChannel(channelID uint) (int64, error) {
	result := r.db.Where("channel_id = ?", channelID).Delete(&entity.Participant{})
	return result.RowsAffected, translateError(result.Error)
}

// DeleteAll удаляет всех участников
func (r *ParticipantRepo) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&entity.Participant{})
	return result.RowsAffected, translateError(result.Error)
}
