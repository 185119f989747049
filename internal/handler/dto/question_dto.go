package dto

import (
	"github.com/jinzhu/copier"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
)

// QuestionResponse - вопрос для участника, без правильного ответа
type QuestionResponse struct {
	ID      uint   `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"option_a"`
	OptionB string `json:"option_b"`
	OptionC string `json:"option_c"`
	OptionD string `json:"option_d"`
}

// AdminQuestionResponse - вопрос для админки, с правильным ответом
type AdminQuestionResponse struct {
	ID            uint   `json:"id"`
	Text          string `json:"text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
}

// NewQuestionListResponse преобразует вопросы для участника
func NewQuestionListResponse(questions []entity.Question) ([]QuestionResponse, error) {
	out := make([]QuestionResponse, 0, len(questions))
	if err := copier.Copy(&out, &questions); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// NewAdminQuestionResponse преобразует вопрос для админки
func NewAdminQuestionResponse(question *entity.Question) (*AdminQuestionResponse, error) {
	var out AdminQuestionResponse
	if err := copier.Copy(&out, question); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewAdminQuestionListResponse преобразует список вопросов для админки
func NewAdminQuestionListResponse(questions []entity.Question) ([]AdminQuestionResponse, error) {
	out := make([]AdminQuestionResponse, 0, len(questions))
	if err := copier.Copy(&out, &questions); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}
