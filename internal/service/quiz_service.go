package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	"github.com/yourusername/quiz-channels-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-channels-api/internal/pkg/errors"
)

// JoinResult содержит канал и участие после присоединения
type JoinResult struct {
	Channel     *entity.Channel
	Participant *entity.Participant
}

// AnswerResult содержит правильность ответа и пересчитанный счет
type AnswerResult struct {
	Correct bool
	Score   int
}

// QuizService реализует прохождение викторины участником:
// присоединение к каналу, ответы на вопросы и сдачу
type QuizService struct {
	uow       repository.UnitOfWork
	publisher EventPublisher
	now       func() time.Time
}

// NewQuizService создает новый сервис прохождения викторины
func NewQuizService(uow repository.UnitOfWork, publisher EventPublisher) *QuizService {
	return &QuizService{
		uow:       uow,
		publisher: publisherOrNoop(publisher),
		now:       time.Now,
	}
}

// JoinChannel присоединяет пользователя к каналу по коду.
// Пользователь создается при первом входе. Повторный вход до сдачи
// перезапускает отсчет времени, после сдачи возвращает конфликт.
func (s *QuizService) JoinChannel(ctx context.Context, code, username string) (*JoinResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.New(apperrors.ErrValidation, "Username is required")
	}

	var result JoinResult
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		channel, err := repos.Channels.GetByCode(code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.New(apperrors.ErrNotFound, "Channel not found")
			}
			return err
		}

		user, err := s.getOrCreateUser(repos.Users, username)
		if err != nil {
			return err
		}

		startedAt := s.now().UTC()
		participant, err := repos.Participants.GetByUserAndChannel(user.ID, channel.ID)
		switch {
		case err == nil:
			if participant.QuizSubmitted {
				return apperrors.New(apperrors.ErrConflict, "You have already completed this quiz")
			}
			if err := repos.Participants.ResetStartTime(participant.ID, startedAt); err != nil {
				return fmt.Errorf("failed to reset quiz start time: %w", err)
			}
			participant.QuizStartedAt = startedAt
		case errors.Is(err, apperrors.ErrNotFound):
			participant = &entity.Participant{UserID: user.ID, ChannelID: channel.ID, QuizStartedAt: startedAt}
			if err := repos.Participants.Create(participant); err != nil {
				return fmt.Errorf("failed to create participant: %w", err)
			}
		default:
			return err
		}

		result = JoinResult{Channel: channel, Participant: participant}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(EventParticipantJoined, ParticipantJoinedEvent{
		Username:      username,
		ChannelCode:   result.Channel.Code,
		ChannelName:   result.Channel.Name,
		QuizStartedAt: result.Participant.QuizStartedAt.Format(time.RFC3339Nano),
	})
	return &result, nil
}

func (s *QuizService) getOrCreateUser(users repository.UserRepository, username string) (*entity.User, error) {
	user, err := users.GetByUsername(username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	user = &entity.User{Username: username}
	if err := users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// resolveParticipant находит участие пользователя в канале по имени и коду
func resolveParticipant(repos repository.Repositories, username, channelCode string) (*entity.Participant, *entity.Channel, error) {
	user, err := repos.Users.GetByUsername(username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, err
	}
	channel, cerr := repos.Channels.GetByCode(strings.ToUpper(strings.TrimSpace(channelCode)))
	if cerr != nil && !errors.Is(cerr, apperrors.ErrNotFound) {
		return nil, nil, cerr
	}
	if err != nil || cerr != nil {
		return nil, nil, apperrors.New(apperrors.ErrNotFound, "User or channel not found")
	}

	participant, err := repos.Participants.GetByUserAndChannel(user.ID, channel.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.New(apperrors.ErrNotFound, "Participant not found")
		}
		return nil, nil, err
	}
	return participant, channel, nil
}

// SubmitAnswer сохраняет ответ участника и пересчитывает счет как число
// правильных ответов. Повторный ответ на вопрос перезаписывает предыдущий.
func (s *QuizService) SubmitAnswer(ctx context.Context, username, channelCode string, questionID uint, selected string) (*AnswerResult, error) {
	selected = entity.NormalizeOption(selected)
	if !entity.IsValidOption(selected) {
		return nil, apperrors.New(apperrors.ErrValidation, "selected_answer must be one of A, B, C, D")
	}

	var result AnswerResult
	var channel *entity.Channel
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		participant, ch, err := resolveParticipant(repos, username, channelCode)
		if err != nil {
			return err
		}
		channel = ch
		if !participant.CanAnswer() {
			return apperrors.New(apperrors.ErrConflict, "You have already completed this quiz")
		}

		question, err := repos.Questions.GetByID(questionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.New(apperrors.ErrNotFound, "Question not found")
			}
			return err
		}

		answer := &entity.Answer{
			ParticipantID:  participant.ID,
			QuestionID:     question.ID,
			SelectedAnswer: selected,
			IsCorrect:      question.IsCorrect(selected),
		}
		if err := repos.Answers.Upsert(answer); err != nil {
			return fmt.Errorf("failed to save answer: %w", err)
		}

		score, err := s.recount(repos, participant.ID)
		if err != nil {
			return err
		}
		result = AnswerResult{Correct: answer.IsCorrect, Score: score}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(EventAnswerSubmitted, AnswerSubmittedEvent{
		Username:    username,
		ChannelCode: channel.Code,
		QuestionID:  questionID,
		Correct:     result.Correct,
		Score:       result.Score,
	})
	return &result, nil
}

// SubmitQuiz фиксирует сдачу викторины и возвращает итоговый счет.
// Повторная сдача ничего не меняет и возвращает тот же счет.
func (s *QuizService) SubmitQuiz(ctx context.Context, username, channelCode string) (int, error) {
	var (
		finalScore    int
		channel       *entity.Channel
		alreadyClosed bool
	)
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		participant, ch, err := resolveParticipant(repos, username, channelCode)
		if err != nil {
			return err
		}
		channel = ch
		if participant.QuizSubmitted {
			alreadyClosed = true
			finalScore = participant.Score
			return nil
		}

		score, err := s.recount(repos, participant.ID)
		if err != nil {
			return err
		}
		if err := repos.Participants.MarkSubmitted(participant.ID); err != nil {
			return fmt.Errorf("failed to mark quiz submitted: %w", err)
		}
		finalScore = score
		return nil
	})
	if err != nil {
		return 0, err
	}

	if !alreadyClosed {
		log.Info().Str("username", username).Str("channel_code", channel.Code).Int("final_score", finalScore).Msg("Викторина сдана")
		s.publisher.Publish(EventQuizSubmitted, QuizSubmittedEvent{
			Username:    username,
			ChannelCode: channel.Code,
			FinalScore:  finalScore,
		})
	}
	return finalScore, nil
}

// recount пересчитывает счет участника по сохраненным ответам
func (s *QuizService) recount(repos repository.Repositories, participantID uint) (int, error) {
	correct, err := repos.Answers.CountCorrect(participantID)
	if err != nil {
		return 0, fmt.Errorf("failed to count correct answers: %w", err)
	}
	score := int(correct)
	if err := repos.Participants.UpdateScore(participantID, score); err != nil {
		return 0, fmt.Errorf("failed to update score: %w", err)
	}
	return score, nil
}
