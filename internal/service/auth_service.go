package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/quiz-channels-api/internal/config"
	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	"github.com/yourusername/quiz-channels-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-channels-api/internal/pkg/errors"
)

// TokenIssuer выпускает токены доступа администратора
type TokenIssuer interface {
	GenerateToken(user *entity.User) (string, time.Time, error)
}

// LoginResult содержит администратора и выданный токен
type LoginResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// AuthService проверяет учетные данные администраторов
type AuthService struct {
	uow    repository.UnitOfWork
	tokens TokenIssuer
	cfg    config.AuthConfig
}

// NewAuthService создает новый сервис аутентификации. tokens может быть nil,
// тогда вход проверяет только пароль.
func NewAuthService(uow repository.UnitOfWork, tokens TokenIssuer, cfg config.AuthConfig) *AuthService {
	return &AuthService{uow: uow, tokens: tokens, cfg: cfg}
}

// Login проверяет имя и пароль администратора и выдает токен
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var admin *entity.User
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		admin, err = repos.Users.GetAdminByUsername(username)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.New(apperrors.ErrUnauthorized, "Invalid credentials")
		}
		return nil, err
	}

	if !admin.CheckPassword(password) {
		log.Warn().Str("username", username).Msg("Неудачная попытка входа администратора")
		return nil, apperrors.New(apperrors.ErrUnauthorized, "Invalid credentials")
	}

	result := &LoginResult{User: admin}
	if s.tokens != nil {
		token, expiresAt, err := s.tokens.GenerateToken(admin)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}
		result.Token = token
		result.ExpiresAt = expiresAt
	}
	return result, nil
}

// EnsureBootstrapAdmin создает администратора из конфигурации, если его еще нет.
// Пустой пароль в конфигурации отключает создание.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context) error {
	if s.cfg.BootstrapUsername == "" || s.cfg.BootstrapPassword == "" {
		log.Debug().Msg("Начальный администратор не настроен")
		return nil
	}

	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Users.GetByUsername(s.cfg.BootstrapUsername)
		if err == nil {
			if !existing.IsAdmin {
				log.Warn().Str("username", existing.Username).Msg("Имя начального администратора занято обычным пользователем")
			}
			return nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		admin := &entity.User{Username: s.cfg.BootstrapUsername, IsAdmin: true}
		if err := admin.SetPassword(s.cfg.BootstrapPassword); err != nil {
			return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
		}
		if err := repos.Users.Create(admin); err != nil {
			return fmt.Errorf("failed to create bootstrap admin: %w", err)
		}
		log.Info().Str("username", admin.Username).Msg("Создан начальный администратор")
		return nil
	})
}
