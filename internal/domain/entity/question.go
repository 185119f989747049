package entity

import (
	"strings"
)

// Допустимые варианты ответа
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// Options перечисляет варианты ответа в порядке отображения
var Options = []string{OptionA, OptionB, OptionC, OptionD}

// Question представляет вопрос банка с четырьмя вариантами ответа
type Question struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Text          string `gorm:"size:1000;not null;uniqueIndex" json:"text"`
	OptionA       string `gorm:"column:option_a;not null" json:"option_a"`
	OptionB       string `gorm:"column:option_b;not null" json:"option_b"`
	OptionC       string `gorm:"column:option_c;not null" json:"option_c"`
	OptionD       string `gorm:"column:option_d;not null" json:"option_d"`
	CorrectAnswer string `gorm:"size:1;not null" json:"correct_answer"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// NormalizeOption приводит выбранный вариант к виду "A".."D"
func NormalizeOption(option string) string {
	return strings.ToUpper(strings.TrimSpace(option))
}

// IsValidOption проверяет, является ли вариант одним из A-D
func IsValidOption(option string) bool {
	switch NormalizeOption(option) {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selected string) bool {
	return NormalizeOption(selected) == NormalizeOption(q.CorrectAnswer)
}

// OptionText возвращает текст варианта по букве
func (q *Question) OptionText(option string) string {
	switch NormalizeOption(option) {
	case OptionA:
		return q.OptionA
	case OptionB:
		return q.OptionB
	case OptionC:
		return q.OptionC
	case OptionD:
		return q.OptionD
	}
	return ""
}
