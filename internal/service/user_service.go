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

// UserService управляет пользователями и учетными записями администраторов
type UserService struct {
	uow repository.UnitOfWork
}

// NewUserService создает новый сервис пользователей
func NewUserService(uow repository.UnitOfWork) *UserService {
	return &UserService{uow: uow}
}

// CreateUser создает пользователя без пароля
func (s *UserService) CreateUser(ctx context.Context, username string, isAdmin bool) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.New(apperrors.ErrValidation, "Username is required")
	}
	user := &entity.User{Username: username, IsAdmin: isAdmin}
	if err := s.create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListAdmins возвращает всех администраторов
func (s *UserService) ListAdmins(ctx context.Context) ([]entity.User, error) {
	var admins []entity.User
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		admins, err = repos.Users.ListAdmins()
		return err
	})
	return admins, err
}

// AdminExists проверяет, что администратор с таким id еще существует
func (s *UserService) AdminExists(ctx context.Context, id uint) (bool, error) {
	var exists bool
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		_, err := repos.Users.GetAdminByID(id)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// CreateAdmin создает администратора с хешированным паролем
func (s *UserService) CreateAdmin(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.New(apperrors.ErrValidation, "Username is required")
	}
	if password == "" {
		return nil, apperrors.New(apperrors.ErrValidation, "Password is required")
	}

	admin := &entity.User{Username: username, IsAdmin: true}
	if err := admin.SetPassword(password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.create(ctx, admin); err != nil {
		return nil, err
	}
	log.Info().Str("username", username).Msg("Создан администратор")
	return admin, nil
}

func (s *UserService) create(ctx context.Context, user *entity.User) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Users.GetByUsername(user.Username); err == nil {
			return apperrors.New(apperrors.ErrConflict, "Username already exists")
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if err := repos.Users.Create(user); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apperrors.New(apperrors.ErrConflict, "Username already exists")
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
}

// UpdatePassword меняет пароль администратора после проверки текущего
func (s *UserService) UpdatePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.New(apperrors.ErrValidation, "New password is required")
	}
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		admin, err := repos.Users.GetAdminByUsername(username)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.New(apperrors.ErrNotFound, "User not found")
			}
			return err
		}
		if !admin.CheckPassword(currentPassword) {
			return apperrors.New(apperrors.ErrBadRequest, "Current password is incorrect")
		}
		if err := repos.Users.UpdatePassword(admin.ID, newPassword); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		log.Info().Str("username", username).Msg("Пароль администратора обновлен")
		return nil
	})
}

// DeleteAdmin удаляет администратора. Нельзя удалить себя,
// последнего администратора и администратора, создавшего каналы.
func (s *UserService) DeleteAdmin(ctx context.Context, adminID uint, currentUsername string) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		admin, err := repos.Users.GetAdminByID(adminID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.New(apperrors.ErrNotFound, "User not found")
			}
			return err
		}
		if admin.Username == currentUsername {
			return apperrors.New(apperrors.ErrBadRequest, "Cannot delete your own account")
		}

		admins, err := repos.Users.ListAdmins()
		if err != nil {
			return err
		}
		if len(admins) <= 1 {
			return apperrors.New(apperrors.ErrBadRequest, "Cannot delete the last admin account")
		}

		channels, err := repos.Channels.CountByAdmin(admin.ID)
		if err != nil {
			return err
		}
		if channels > 0 {
			return apperrors.New(apperrors.ErrBadRequest, "Cannot delete user who has created channels")
		}

		if err := repos.Users.Delete(admin.ID); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apperrors.New(apperrors.ErrBadRequest, "Cannot delete user who has quiz results")
			}
			return err
		}
		log.Info().Str("username", admin.Username).Str("deleted_by", currentUsername).Msg("Администратор удален")
		return nil
	})
}
