package entity

// Answer представляет ответ участника на один вопрос.
// Пара (ParticipantID, QuestionID) уникальна, повторный ответ перезаписывает строку.
type Answer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ParticipantID  uint      `gorm:"not null;uniqueIndex:idx_answers_participant_question" json:"participant_id"`
	QuestionID     uint      `gorm:"not null;uniqueIndex:idx_answers_participant_question;index" json:"question_id"`
	SelectedAnswer string    `gorm:"size:1;not null" json:"selected_answer"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	Question       *Question `gorm:"foreignKey:QuestionID" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "answers"
}
