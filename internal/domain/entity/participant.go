package entity

import (
	"time"
)

// Participant связывает пользователя с попыткой прохождения викторины канала.
// Пара (UserID, ChannelID) уникальна.
type Participant struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_participants_user_channel" json:"user_id"`
	ChannelID     uint      `gorm:"not null;uniqueIndex:idx_participants_user_channel;index" json:"channel_id"`
	Score         int       `gorm:"not null;default:0" json:"score"`
	QuizStartedAt time.Time `gorm:"not null" json:"quiz_started_at"`
	QuizSubmitted bool      `gorm:"not null;default:false" json:"quiz_submitted"`
	User          *User     `gorm:"foreignKey:UserID" json:"-"`
	Channel       *Channel  `gorm:"foreignKey:ChannelID" json:"-"`
	Answers       []Answer  `gorm:"foreignKey:ParticipantID" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Participant) TableName() string {
	return "participants"
}

// CanAnswer сообщает, принимает ли участник еще ответы.
// Переход в состояние "сдано" необратим.
func (p *Participant) CanAnswer() bool {
	return !p.QuizSubmitted
}
