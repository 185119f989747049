package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/quiz-channels-api/internal/config"
	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	"github.com/yourusername/quiz-channels-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-channels-api/internal/pkg/errors"
)

// ChannelService управляет каналами викторин
type ChannelService struct {
	uow          repository.UnitOfWork
	codeLength   int
	codeAttempts int
	generateCode func(length int) (string, error)
}

// NewChannelService создает новый сервис каналов
func NewChannelService(uow repository.UnitOfWork, cfg config.QuizConfig) *ChannelService {
	length := cfg.CodeLength
	if length <= 0 {
		length = 6
	}
	attempts := cfg.CodeAttempts
	if attempts <= 0 {
		attempts = 1
	}
	return &ChannelService{
		uow:          uow,
		codeLength:   length,
		codeAttempts: attempts,
		generateCode: GenerateChannelCode,
	}
}

// CreateChannel создает канал, принадлежащий администратору adminUsername,
// и генерирует для него уникальный код присоединения
func (s *ChannelService) CreateChannel(ctx context.Context, name, adminUsername string) (*entity.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.ErrValidation, "Channel name is required")
	}

	var channel *entity.Channel
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		admin, err := repos.Users.GetAdminByUsername(adminUsername)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.New(apperrors.ErrNotFound, "Admin user not found")
			}
			return err
		}

		if _, err := repos.Channels.GetByName(name); err == nil {
			return apperrors.New(apperrors.ErrConflict, "Channel name already exists")
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		code, err := s.uniqueCode(repos.Channels)
		if err != nil {
			return err
		}

		channel = &entity.Channel{Name: name, Code: code, AdminID: admin.ID}
		if err := repos.Channels.Create(channel); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apperrors.New(apperrors.ErrConflict, "Channel name or code already exists")
			}
			return fmt.Errorf("failed to create channel: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("channel_code", channel.Code).Str("admin", adminUsername).Msg("Канал создан")
	return channel, nil
}

// uniqueCode генерирует код, которого еще нет в таблице каналов
func (s *ChannelService) uniqueCode(channels repository.ChannelRepository) (string, error) {
	for attempt := 1; attempt <= s.codeAttempts; attempt++ {
		code, err := s.generateCode(s.codeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate channel code: %w", err)
		}
		exists, err := channels.ExistsByCode(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		log.Warn().Str("channel_code", code).Int("attempt", attempt).Msg("Коллизия кода канала, генерируем заново")
	}
	return "", apperrors.New(apperrors.ErrConflict, "Could not generate a unique channel code")
}

// ListChannels возвращает все каналы
func (s *ChannelService) ListChannels(ctx context.Context) ([]entity.Channel, error) {
	var channels []entity.Channel
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		channels, err = repos.Channels.List()
		return err
	})
	return channels, err
}

// DeleteChannel удаляет канал вместе с участниками и их ответами
func (s *ChannelService) DeleteChannel(ctx context.Context, channelID uint) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Channels.GetByID(channelID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.New(apperrors.ErrNotFound, "Channel not found")
			}
			return err
		}

		answers, err := repos.Answers.DeleteByChannel(channelID)
		if err != nil {
			return fmt.Errorf("failed to delete channel answers: %w", err)
		}
		participants, err := repos.Participants.DeleteByChannel(channelID)
		if err != nil {
			return fmt.Errorf("failed to delete channel participants: %w", err)
		}
		if err := repos.Channels.Delete(channelID); err != nil {
			return err
		}

		log.Info().
			Uint("channel_id", channelID).
			Int64("answers", answers).
			Int64("participants", participants).
			Msg("Канал удален")
		return nil
	})
}
