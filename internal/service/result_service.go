package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	"github.com/yourusername/quiz-channels-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-channels-api/internal/pkg/errors"
)

// AnswerSummary - краткая запись ответа в сводке результатов
type AnswerSummary struct {
	QuestionID     uint
	SelectedAnswer string
	IsCorrect      bool
}

// ParticipantResult - результат одного участия
type ParticipantResult struct {
	Username       string
	Channel        string
	ChannelCode    string
	Score          int
	QuizSubmitted  bool
	TotalQuestions int
	Answers        []AnswerSummary
}

// DetailedAnswer - ответ вместе с текстом вопроса и вариантами
type DetailedAnswer struct {
	QuestionText   string
	OptionA        string
	OptionB        string
	OptionC        string
	OptionD        string
	CorrectAnswer  string
	SelectedAnswer string
	IsCorrect      bool
}

// DetailedResult - подробный результат пользователя в одном канале
type DetailedResult struct {
	Username       string
	Channel        string
	Score          int
	TotalQuestions int
	Answers        []DetailedAnswer
}

// ClearStats - число удаленных записей при очистке результатов
type ClearStats struct {
	Answers      int64
	Participants int64
	Channels     int64
}

// ResultService строит отчеты по результатам для администраторов
type ResultService struct {
	uow       repository.UnitOfWork
	publisher EventPublisher
}

// NewResultService создает новый сервис результатов
func NewResultService(uow repository.UnitOfWork, publisher EventPublisher) *ResultService {
	return &ResultService{uow: uow, publisher: publisherOrNoop(publisher)}
}

// ListResults возвращает всех участников с их ответами
func (s *ResultService) ListResults(ctx context.Context) ([]ParticipantResult, error) {
	var participants []entity.Participant
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		participants, err = repos.Participants.ListWithAnswers()
		return err
	})
	if err != nil {
		return nil, err
	}

	results := make([]ParticipantResult, 0, len(participants))
	for _, p := range participants {
		r := ParticipantResult{
			Score:          p.Score,
			QuizSubmitted:  p.QuizSubmitted,
			TotalQuestions: len(p.Answers),
			Answers:        make([]AnswerSummary, 0, len(p.Answers)),
		}
		if p.User != nil {
			r.Username = p.User.Username
		}
		if p.Channel != nil {
			r.Channel = p.Channel.Name
			r.ChannelCode = p.Channel.Code
		}
		for _, a := range p.Answers {
			r.Answers = append(r.Answers, AnswerSummary{
				QuestionID:     a.QuestionID,
				SelectedAnswer: a.SelectedAnswer,
				IsCorrect:      a.IsCorrect,
			})
		}
		results = append(results, r)
	}
	return results, nil
}

// UserResults возвращает подробный результат пользователя.
// Если channelCode пуст, берется первое участие пользователя.
func (s *ResultService) UserResults(ctx context.Context, username, channelCode string) (*DetailedResult, error) {
	var participants []entity.Participant
	var user *entity.User
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		user, err = repos.Users.GetByUsername(username)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.New(apperrors.ErrNotFound, "User '%s' not found", username)
			}
			return err
		}
		participants, err = repos.Participants.ListByUserWithDetails(user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	participant := pickParticipation(participants, channelCode)
	if participant == nil {
		return nil, apperrors.New(apperrors.ErrNotFound, "No quiz results found")
	}

	result := &DetailedResult{
		Username:       user.Username,
		Score:          participant.Score,
		TotalQuestions: len(participant.Answers),
		Answers:        make([]DetailedAnswer, 0, len(participant.Answers)),
	}
	if participant.Channel != nil {
		result.Channel = participant.Channel.Name
	}
	for _, a := range participant.Answers {
		d := DetailedAnswer{SelectedAnswer: a.SelectedAnswer, IsCorrect: a.IsCorrect}
		if q := a.Question; q != nil {
			d.QuestionText = q.Text
			d.OptionA = q.OptionA
			d.OptionB = q.OptionB
			d.OptionC = q.OptionC
			d.OptionD = q.OptionD
			d.CorrectAnswer = q.CorrectAnswer
		}
		result.Answers = append(result.Answers, d)
	}
	return result, nil
}

func pickParticipation(participants []entity.Participant, channelCode string) *entity.Participant {
	channelCode = strings.ToUpper(strings.TrimSpace(channelCode))
	for i := range participants {
		p := &participants[i]
		if channelCode == "" {
			return p
		}
		if p.Channel != nil && p.Channel.Code == channelCode {
			return p
		}
	}
	return nil
}

// ClearAll удаляет все ответы, участия и каналы
func (s *ResultService) ClearAll(ctx context.Context) (*ClearStats, error) {
	var stats ClearStats
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		if stats.Answers, err = repos.Answers.DeleteAll(); err != nil {
			return fmt.Errorf("failed to delete answers: %w", err)
		}
		if stats.Participants, err = repos.Participants.DeleteAll(); err != nil {
			return fmt.Errorf("failed to delete participants: %w", err)
		}
		if stats.Channels, err = repos.Channels.DeleteAll(); err != nil {
			return fmt.Errorf("failed to delete channels: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Warn().
		Int64("answers", stats.Answers).
		Int64("participants", stats.Participants).
		Int64("channels", stats.Channels).
		Msg("Все результаты очищены")
	s.publisher.Publish(EventResultsCleared, ResultsClearedEvent{
		Answers:      stats.Answers,
		Participants: stats.Participants,
		Channels:     stats.Channels,
	})
	return &stats, nil
}
