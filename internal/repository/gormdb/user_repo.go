package gormdb

import (
	"gorm.io/gorm"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-channels-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя. Дубликат имени возвращает ErrConflict.
func (r *UserRepo) Create(user *entity.User) error {
	return translateError(r.db.Create(user).Error)
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetByUsername возвращает пользователя по имени
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetAdminByID возвращает администратора по ID
func (r *UserRepo) GetAdminByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("id = ? AND is_admin = ?", id, true).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetAdminByUsername возвращает администратора по имени
func (r *UserRepo) GetAdminByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("username = ? AND is_admin = ?", username, true).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// ListAdmins возвращает всех администраторов
func (r *UserRepo) ListAdmins() ([]entity.User, error) {
	var users []entity.User
	err := r.db.Where("is_admin = ?", true).Order("id").Find(&users).Error
	return users, err
}

// UpdatePassword хеширует и сохраняет новый пароль
func (r *UserRepo) UpdatePassword(userID uint, newPassword string) error {
	hashedPassword, err := entity.HashPassword(newPassword)
	if err != nil {
		return err
	}

	result := r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		UpdateColumn("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет пользователя. Если на него ссылаются каналы или участия, возвращает ErrConflict.
func (r *UserRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.User{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
