package entity

import (
	"time"
)

// Channel представляет экземпляр викторины, к которому участники присоединяются по коду
type Channel struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Code         string        `gorm:"size:16;not null;uniqueIndex" json:"code"`
	AdminID      uint          `gorm:"not null;index" json:"admin_id"`
	Admin        *User         `gorm:"foreignKey:AdminID" json:"-"`
	Participants []Participant `gorm:"foreignKey:ChannelID" json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Channel) TableName() string {
	return "channels"
}
