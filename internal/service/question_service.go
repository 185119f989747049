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

// questionsCacheKey - ключ кеша полного банка вопросов
const questionsCacheKey = "questions:all"

// QuestionInput содержит поля вопроса при создании и обновлении
type QuestionInput struct {
	Text          string `yaml:"text"`
	OptionA       string `yaml:"option_a"`
	OptionB       string `yaml:"option_b"`
	OptionC       string `yaml:"option_c"`
	OptionD       string `yaml:"option_d"`
	CorrectAnswer string `yaml:"correct_answer"`
}

// Validate проверяет заполненность полей и вариант правильного ответа
func (in *QuestionInput) Validate() error {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return apperrors.New(apperrors.ErrValidation, "Question text is required")
	}
	for _, opt := range []string{in.OptionA, in.OptionB, in.OptionC, in.OptionD} {
		if strings.TrimSpace(opt) == "" {
			return apperrors.New(apperrors.ErrValidation, "All four options are required")
		}
	}
	in.CorrectAnswer = entity.NormalizeOption(in.CorrectAnswer)
	if !entity.IsValidOption(in.CorrectAnswer) {
		return apperrors.New(apperrors.ErrValidation, "correct_answer must be one of A, B, C, D")
	}
	return nil
}

func (in *QuestionInput) applyTo(q *entity.Question) {
	q.Text = in.Text
	q.OptionA = in.OptionA
	q.OptionB = in.OptionB
	q.OptionC = in.OptionC
	q.OptionD = in.OptionD
	q.CorrectAnswer = in.CorrectAnswer
}

// QuestionService управляет банком вопросов.
// Полный список кешируется в Redis, если кеш настроен.
type QuestionService struct {
	uow      repository.UnitOfWork
	cache    repository.CacheRepository
	cacheTTL time.Duration
}

// NewQuestionService создает новый сервис вопросов. cache может быть nil.
func NewQuestionService(uow repository.UnitOfWork, cache repository.CacheRepository, cacheTTL time.Duration) *QuestionService {
	return &QuestionService{uow: uow, cache: cache, cacheTTL: cacheTTL}
}

// ListQuestions возвращает весь банк вопросов
func (s *QuestionService) ListQuestions(ctx context.Context) ([]entity.Question, error) {
	if s.cache != nil {
		var cached []entity.Question
		err := s.cache.GetJSON(questionsCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Warn().Err(err).Msg("Не удалось прочитать банк вопросов из кеша")
		}
	}

	var questions []entity.Question
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		questions, err = repos.Questions.List()
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(questionsCacheKey, questions, s.cacheTTL); err != nil {
			log.Warn().Err(err).Msg("Не удалось сохранить банк вопросов в кеш")
		}
	}
	return questions, nil
}

// RandomQuestions возвращает count случайных вопросов без повторов
// или весь банк, если count не меньше его размера
func (s *QuestionService) RandomQuestions(ctx context.Context, count int) ([]entity.Question, error) {
	if count < 0 {
		return nil, apperrors.New(apperrors.ErrValidation, "count must not be negative")
	}
	var questions []entity.Question
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		questions, err = repos.Questions.GetRandomQuestions(count)
		return err
	})
	return questions, err
}

// CreateQuestion добавляет вопрос с уникальным текстом
func (s *QuestionService) CreateQuestion(ctx context.Context, in QuestionInput) (*entity.Question, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	question := &entity.Question{}
	in.applyTo(question)
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Questions.GetByText(in.Text); err == nil {
			return apperrors.New(apperrors.ErrConflict, "Question already exists")
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if err := repos.Questions.Create(question); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apperrors.New(apperrors.ErrConflict, "Question already exists")
			}
			return fmt.Errorf("failed to create question: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate()
	return question, nil
}

// UpdateQuestion обновляет вопрос; новый текст не должен совпадать с другим вопросом
func (s *QuestionService) UpdateQuestion(ctx context.Context, id uint, in QuestionInput) (*entity.Question, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var question *entity.Question
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		question, err = repos.Questions.GetByID(id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.New(apperrors.ErrNotFound, "Question not found")
			}
			return err
		}

		if in.Text != question.Text {
			other, err := repos.Questions.GetByText(in.Text)
			if err == nil && other.ID != id {
				return apperrors.New(apperrors.ErrConflict, "Question text already exists")
			}
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
		}

		in.applyTo(question)
		if err := repos.Questions.Update(question); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apperrors.New(apperrors.ErrConflict, "Question text already exists")
			}
			return fmt.Errorf("failed to update question: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate()
	return question, nil
}

// DeleteQuestion удаляет вопрос, если на него еще никто не ответил
func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Questions.GetByID(id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.New(apperrors.ErrNotFound, "Question not found")
			}
			return err
		}

		answered, err := repos.Answers.CountByQuestion(id)
		if err != nil {
			return err
		}
		if answered > 0 {
			return apperrors.New(apperrors.ErrBadRequest, "Cannot delete question that has been answered")
		}
		return repos.Questions.Delete(id)
	})
	if err != nil {
		return err
	}

	s.invalidate()
	return nil
}

// ImportQuestions загружает вопросы в банк, пропуская уже существующие тексты.
// replace сначала удаляет вопросы, на которые нет ответов.
func (s *QuestionService) ImportQuestions(ctx context.Context, inputs []QuestionInput, replace bool) (created int, err error) {
	for i := range inputs {
		if err := inputs[i].Validate(); err != nil {
			return 0, fmt.Errorf("question #%d: %w", i+1, err)
		}
	}

	err = s.uow.Do(ctx, func(repos repository.Repositories) error {
		if replace {
			removed, err := repos.Questions.DeleteUnreferenced()
			if err != nil {
				return fmt.Errorf("failed to remove unreferenced questions: %w", err)
			}
			log.Info().Int64("removed", removed).Msg("Неиспользуемые вопросы удалены")
		}

		for _, in := range inputs {
			if _, err := repos.Questions.GetByText(in.Text); err == nil {
				continue
			} else if !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			question := &entity.Question{}
			in.applyTo(question)
			if err := repos.Questions.Create(question); err != nil {
				return fmt.Errorf("failed to create question %q: %w", in.Text, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidate()
	return created, nil
}

func (s *QuestionService) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(questionsCacheKey); err != nil {
		log.Warn().Err(err).Msg("Не удалось сбросить кеш банка вопросов")
	}
}
