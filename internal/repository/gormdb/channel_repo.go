package gormdb

import (
	"gorm.io/gorm"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-channels-api/internal/pkg/errors"
)

// ChannelRepo реализует repository.ChannelRepository
type ChannelRepo struct {
	db *gorm.DB
}

// NewChannelRepo создает новый репозиторий каналов
func NewChannelRepo(db *gorm.DB) *ChannelRepo {
	return &ChannelRepo{db: db}
}

// Create создает канал. Дубликат имени или кода возвращает ErrConflict.
func (r *ChannelRepo) Create(channel *entity.Channel) error {
	return translateError(r.db.Create(channel).Error)
}

// GetByID возвращает канал по ID
func (r *ChannelRepo) GetByID(id uint) (*entity.Channel, error) {
	var channel entity.Channel
	if err := r.db.First(&channel, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &channel, nil
}

// GetByCode возвращает канал по коду присоединения
func (r *ChannelRepo) GetByCode(code string) (*entity.Channel, error) {
	var channel entity.Channel
	if err := r.db.Where("code = ?", code).First(&channel).Error; err != nil {
		return nil, translateError(err)
	}
	return &channel, nil
}

// GetByName возвращает канал по имени
func (r *ChannelRepo) GetByName(name string) (*entity.Channel, error) {
	var channel entity.Channel
	if err := r.db.Where("name = ?", name).First(&channel).Error; err != nil {
		return nil, translateError(err)
	}
	return &channel, nil
}

// ExistsByCode проверяет, занят ли код
func (r *ChannelRepo) ExistsByCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Channel{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List возвращает все каналы
func (r *ChannelRepo) List() ([]entity.Channel, error) {
	var channels []entity.Channel
	err := r.db.Order("id").Find(&channels).Error
	return channels, err
}

// CountByAdmin считает каналы, созданные администратором
func (r *ChannelRepo) CountByAdmin(adminID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Channel{}).Where("admin_id = ?", adminID).Count(&count).Error
	return count, err
}

// Delete удаляет канал по ID
func (r *ChannelRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Channel{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAll удаляет все каналы
func (r *ChannelRepo) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&entity.Channel{})
	return result.RowsAffected, translateError(result.Error)
}
