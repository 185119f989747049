package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam создает middleware для извлечения и валидации числового параметра URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
		if err != nil || id == 0 {
			message := fmt.Sprintf("Invalid %s", paramName)
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": message, "detail": message})
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
