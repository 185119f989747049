package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-channels-api/internal/pkg/errors"
)

var registerOnce sync.Once

// RegisterValidators регистрирует собственные правила валидации в движке Gin
// и включает имена полей из json-тегов в сообщениях об ошибках
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		if err := v.RegisterValidation("quiz_option", func(fl validator.FieldLevel) bool {
			return entity.IsValidOption(fl.Field().String())
		}); err != nil {
			log.Error().Err(err).Msg("Не удалось зарегистрировать валидатор quiz_option")
		}
	})
}

// respondError отправляет ошибку в формате {"error": ..., "detail": ...}
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "detail": message})
}

// handleError переводит ошибку сервиса в HTTP ответ
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrValidation):
		respondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Internal server error")
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// bindJSON разбирает тело запроса, ошибки формата и валидации отдаются как 422
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusUnprocessableEntity, bindingErrorMessage(err))
		return false
	}
	return true
}

// requireQuery возвращает обязательный параметр запроса
func requireQuery(c *gin.Context, name string) (string, bool) {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		respondError(c, http.StatusUnprocessableEntity, fmt.Sprintf("%s is required", name))
		return "", false
	}
	return value, true
}

func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "quiz_option":
		return fmt.Sprintf("%s must be one of A, B, C, D", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
