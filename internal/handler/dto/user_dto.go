package dto

import (
	"time"

	"github.com/jinzhu/copier"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
)

// UserResponse - пользователь в ответе API
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminUserResponse - администратор в списке пользователей админки
type AdminUserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse создает UserResponse из entity.User
func NewUserResponse(user *entity.User) (*UserResponse, error) {
	var out UserResponse
	if err := copier.Copy(&out, user); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewAdminUserResponse создает AdminUserResponse из entity.User
func NewAdminUserResponse(user *entity.User) (*AdminUserResponse, error) {
	var out AdminUserResponse
	if err := copier.Copy(&out, user); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewAdminUserListResponse преобразует список администраторов
func NewAdminUserListResponse(users []entity.User) ([]AdminUserResponse, error) {
	out := make([]AdminUserResponse, 0, len(users))
	if err := copier.Copy(&out, &users); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}
