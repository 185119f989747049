package entity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User представляет пользователя системы: участника викторины или администратора
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"size:100;not null;default:''" json:"-"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	Channels  []Channel `gorm:"foreignKey:AdminID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// HashPassword возвращает bcrypt-хеш пароля
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// SetPassword хеширует пароль и сохраняет хеш в Password.
// Поле Password всегда содержит только хеш, открытый пароль в него не пишется.
func (u *User) SetPassword(password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу.
// Пользователь без пароля войти не может.
func (u *User) CheckPassword(password string) bool {
	if u.Password == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
