package gormdb

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
)

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo создает новый репозиторий ответов
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// Create сохраняет ответ. Второй ответ на тот же вопрос возвращает ErrConflict.
func (r *AnswerRepo) Create(answer *entity.Answer) error {
	return translateError(r.db.Create(answer).Error)
}

// Upsert сохраняет ответ; при повторном ответе на тот же вопрос перезаписывает
// выбранный вариант и его правильность одной командой INSERT ... ON CONFLICT
func (r *AnswerRepo) Upsert(answer *entity.Answer) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "participant_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_answer", "is_correct"}),
	}).Create(answer).Error
	return translateError(err)
}

// CountCorrect считает правильные ответы участника
func (r *AnswerRepo) CountCorrect(participantID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Answer{}).
		Where("participant_id = ? AND is_correct = ?", participantID, true).
		Count(&count).Error
	return count, err
}

// CountByQuestion считает ответы на вопрос
func (r *AnswerRepo) CountByQuestion(questionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Answer{}).Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}

// DeleteByChannel удаляет ответы всех участников канала
func (r *AnswerRepo) DeleteByChannel(channelID uint) (int64, error) {
	participants := r.db.Model(&entity.Participant{}).Select("id").Where("channel_id = ?", channelID)
	result := r.db.Where("participant_id IN (?)", participants).Delete(&entity.Answer{})
	return result.RowsAffected, translateError(result.Error)
}

// DeleteAll удаляет все ответы
func (r *AnswerRepo) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&entity.Answer{})
	return result.RowsAffected, translateError(result.Error)
}
