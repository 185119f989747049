package repository

import (
	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
)

// ChannelRepository определяет методы для работы с каналами
type ChannelRepository interface {
	Create(channel *entity.Channel) error
	GetByID(id uint) (*entity.Channel, error)
	GetByCode(code string) (*entity.Channel, error)
	GetByName(name string) (*entity.Channel, error)
	ExistsByCode(code string) (bool, error)
	List() ([]entity.Channel, error)
	CountByAdmin(adminID uint) (int64, error)
	Delete(id uint) error
	DeleteAll() (int64, error)
}
