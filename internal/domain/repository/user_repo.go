package repository

import (
	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	// GetAdminByID и GetAdminByUsername ищут только среди администраторов
	GetAdminByID(id uint) (*entity.User, error)
	GetAdminByUsername(username string) (*entity.User, error)
	ListAdmins() ([]entity.User, error)
	// UpdatePassword хеширует и сохраняет новый пароль
	UpdatePassword(userID uint, newPassword string) error
	Delete(id uint) error
}
