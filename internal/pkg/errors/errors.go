package errors

import (
	"errors"
	"fmt"
)

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверные учетные данные, нет токена).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (дубликат имени канала, текста вопроса, повторная сдача викторины).
	ErrConflict = errors.New("resource state conflict")

	// ErrBadRequest используется, когда запрос корректен по форме, но операция запрещена
	// (неверный текущий пароль, удаление вопроса, на который уже отвечали).
	ErrBadRequest = errors.New("bad request")
)

// Error связывает человекочитаемое сообщение с одной из общих ошибок.
// errors.Is(err, ErrNotFound) продолжает работать, а Error() возвращает только сообщение.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New создает ошибку вида kind с отформатированным сообщением
func New(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
