package dto

import (
	"github.com/jinzhu/copier"

	"github.com/yourusername/quiz-channels-api/internal/service"
)

// AnswerSummaryResponse - ответ участника в общей сводке
type AnswerSummaryResponse struct {
	QuestionID     uint   `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// ResultResponse - результат одного участия
type ResultResponse struct {
	Username       string                  `json:"username"`
	Channel        string                  `json:"channel"`
	ChannelCode    string                  `json:"channel_code"`
	Score          int                     `json:"score"`
	QuizSubmitted  bool                    `json:"quiz_submitted"`
	TotalQuestions int                     `json:"total_questions"`
	Answers        []AnswerSummaryResponse `json:"answers"`
}

// DetailedAnswerResponse - ответ с текстом вопроса и вариантами
type DetailedAnswerResponse struct {
	QuestionText   string `json:"question_text"`
	OptionA        string `json:"option_a"`
	OptionB        string `json:"option_b"`
	OptionC        string `json:"option_c"`
	OptionD        string `json:"option_d"`
	CorrectAnswer  string `json:"correct_answer"`
	SelectedAnswer string `json:"selected_answer"`
	IsCorrect      bool   `json:"is_correct"`
}

// DetailedResultResponse - подробный результат пользователя
type DetailedResultResponse struct {
	Username       string                   `json:"username"`
	Channel        string                   `json:"channel"`
	Score          int                      `json:"score"`
	TotalQuestions int                      `json:"total_questions"`
	Answers        []DetailedAnswerResponse `json:"answers"`
}

// NewResultListResponse преобразует сводку результатов
func NewResultListResponse(results []service.ParticipantResult) ([]ResultResponse, error) {
	out := make([]ResultResponse, 0, len(results))
	if err := copier.CopyWithOption(&out, &results, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Answers = nonNil(out[i].Answers)
	}
	return nonNil(out), nil
}

// NewDetailedResultResponse преобразует подробный результат пользователя
func NewDetailedResultResponse(result *service.DetailedResult) (*DetailedResultResponse, error) {
	var out DetailedResultResponse
	if err := copier.CopyWithOption(&out, result, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	out.Answers = nonNil(out.Answers)
	return &out, nil
}
