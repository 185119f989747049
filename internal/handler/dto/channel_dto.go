package dto

import (
	"time"

	"github.com/jinzhu/copier"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
)

// ChannelResponse - канал в ответе API
type ChannelResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	AdminID   uint      `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChannelResponse создает ChannelResponse из entity.Channel
func NewChannelResponse(channel *entity.Channel) (*ChannelResponse, error) {
	var out ChannelResponse
	if err := copier.Copy(&out, channel); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewChannelListResponse преобразует список каналов
func NewChannelListResponse(channels []entity.Channel) ([]ChannelResponse, error) {
	out := make([]ChannelResponse, 0, len(channels))
	if err := copier.Copy(&out, &channels); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}
